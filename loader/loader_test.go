package loader

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/attackpath/strips"
)

func testdata(name string) string {
	return filepath.Join("..", "testdata", name)
}

func opNames(task *strips.GroundTask) []string {
	var out []string
	for _, op := range task.Operators {
		out = append(out, op.Name)
	}
	return out
}

func assertSameTask(t *testing.T, want, got *strips.GroundTask) {
	t.Helper()
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.Init.Equal(got.Init), "init: want %s got %s", want.Init, got.Init)
	assert.Equal(t, want.Goals, got.Goals)
	require.Equal(t, opNames(want), opNames(got))
	for i := range want.Operators {
		assert.Equal(t, want.Operators[i], got.Operators[i])
	}
}

func TestFrontEndsAgree(t *testing.T) {
	for _, model := range []string{"move", "network"} {
		t.Run(model, func(t *testing.T) {
			fromTOML, err := LoadTaskFromFile(testdata(model + ".toml"))
			require.NoError(t, err)
			fromYAML, err := LoadTaskFromFile(testdata(model + ".yaml"))
			require.NoError(t, err)
			fromStar, err := LoadTaskFromFile(testdata(model + ".star"))
			require.NoError(t, err)

			assertSameTask(t, fromTOML, fromYAML)
			assertSameTask(t, fromTOML, fromStar)
		})
	}
}

func TestLoadMove(t *testing.T) {
	task, err := LoadTaskFromFile(testdata("move.toml"))
	require.NoError(t, err)
	assert.Equal(t, "move", task.Name)
	assert.True(t, task.Init.Equal(strips.NewState("at(A)")))
	assert.Equal(t, []strips.Fact{"at(B)"}, task.Goals)
	require.Len(t, task.Operators, 1)
	op := task.Operators[0]
	assert.Equal(t, "move_B", op.Name)
	assert.Equal(t, []strips.Fact{"at(A)"}, op.Pre)
	assert.Equal(t, []strips.Fact{"at(B)"}, op.Add)
	assert.Equal(t, []strips.Fact{"at(A)"}, op.Del)
}

func TestStarlarkGrounding(t *testing.T) {
	task, err := LoadTaskFromFile(testdata("network.star"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"exploit_web", "pivot_ssh_app", "dump_creds_app",
		"login_db_from_web", "login_db_from_app",
	}, opNames(task))
	assert.True(t, task.Init.Contains("reach(app,db)"))
}

func TestStarlarkFromSource(t *testing.T) {
	task, err := LoadStarlark("unnamed.star", `
init = ["a"]
goal = ["b"]
action("ab", pre = ["a"], add = ["b"])
`)
	require.NoError(t, err)
	assert.Equal(t, "", task.Name)
	assert.Equal(t, []string{"ab"}, opNames(task))
}

func TestUnknownFormat(t *testing.T) {
	_, err := LoadTaskFromFile("task.pddl")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMissingFile(t *testing.T) {
	_, err := LoadTaskFromFile(testdata("does_not_exist.toml"))
	assert.Error(t, err)
}

func TestTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "name = \"x\"\ngoal = [\"a\"]\nplan = 3\n"},
		{"bad syntax", "name = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTOML(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestYAMLUnquotedCommaFact(t *testing.T) {
	tf, err := parseYAML(strings.NewReader("name: x\ngoal: [root(db)]\ninit: [reach(internet,web)]\n"))
	require.NoError(t, err)
	_, err = tf.Build()
	assert.ErrorIs(t, err, strips.ErrInvalidTask)

	tf, err = parseYAML(strings.NewReader("name: x\ngoal: [root(db)]\ninit: [\"reach(internet,web)\"]\n"))
	require.NoError(t, err)
	task, err := tf.Build()
	require.NoError(t, err)
	assert.True(t, task.Init.Contains("reach(internet,web)"))
}

func TestYAMLNetworkOperators(t *testing.T) {
	task, err := LoadTaskFromFile(testdata("network.yaml"))
	require.NoError(t, err)
	require.Len(t, task.Operators, 5)
	assert.Equal(t, []strips.Fact{"attacker_on(internet)", "reach(internet,web)", "vuln(web,cve_2021_41773)"},
		task.Operators[0].Pre)
}

func TestYAMLUnknownField(t *testing.T) {
	_, err := parseYAML(strings.NewReader("name: x\ngoal: [a]\nplan: 3\n"))
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	t.Run("no goal", func(t *testing.T) {
		_, err := (&TaskFile{Name: "x", Init: []string{"a"}}).Build()
		assert.ErrorIs(t, err, strips.ErrInvalidTask)
	})
	t.Run("duplicate operator", func(t *testing.T) {
		_, err := (&TaskFile{
			Name: "x",
			Goal: []string{"b"},
			Operators: []OperatorSpec{
				{Name: "ab", Add: []string{"b"}},
				{Name: "ab", Add: []string{"b"}},
			},
		}).Build()
		assert.ErrorIs(t, err, strips.ErrInvalidTask)
	})
	t.Run("unbalanced fact", func(t *testing.T) {
		_, err := (&TaskFile{Name: "x", Init: []string{"reach(internet", "web)"}, Goal: []string{"a"}}).Build()
		assert.ErrorIs(t, err, strips.ErrInvalidTask)
	})
	t.Run("unbalanced operator fact", func(t *testing.T) {
		_, err := (&TaskFile{
			Name:      "x",
			Goal:      []string{"b"},
			Operators: []OperatorSpec{{Name: "ab", Pre: []string{"vuln(web"}, Add: []string{"b"}}},
		}).Build()
		assert.ErrorIs(t, err, strips.ErrInvalidTask)
	})
	t.Run("empty fact", func(t *testing.T) {
		_, err := (&TaskFile{Name: "x", Goal: []string{"  "}}).Build()
		assert.ErrorIs(t, err, strips.ErrInvalidTask)
	})
	t.Run("facts are trimmed", func(t *testing.T) {
		task, err := (&TaskFile{Name: "x", Init: []string{" a "}, Goal: []string{"a"}}).Build()
		require.NoError(t, err)
		assert.True(t, task.Init.Contains("a"))
	})
}

func TestStarlarkErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"syntax", "init = [\n", nil},
		{"runtime", "init = [1 + \"a\"]\ngoal = [\"b\"]\n", nil},
		{"missing goal", "init = [\"a\"]\n", strips.ErrInvalidTask},
		{"empty goal", "goal = []\n", strips.ErrInvalidTask},
		{"non-string fact", "goal = [1]\n", nil},
		{"non-list goal", "goal = 1\n", nil},
		{"bad action", "goal = [\"a\"]\naction(\"x\", pre = [2])\n", nil},
		{"action without name", "goal = [\"a\"]\naction(pre = [\"a\"])\n", nil},
		{"fact kwargs", "goal = [fact(\"a\", x = 1)]\n", nil},
		{"name not string", "name = 3\ngoal = [\"a\"]\n", nil},
		{"unbalanced fact", "goal = [\"root(db\"]\n", strips.ErrInvalidTask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStarlark(tt.name+".star", tt.src)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestFactBuiltin(t *testing.T) {
	task, err := LoadStarlark("facts.star", `
goal = [fact("pwned"), fact("port", "web", 443), fact("root", "db")]
`)
	require.NoError(t, err)
	assert.Equal(t, []strips.Fact{"port(web,443)", "pwned", "root(db)"}, task.Goals)
}

func TestTaskNameDefaultsToFile(t *testing.T) {
	task, err := LoadTaskFromFile(testdata("unsolvable.toml"))
	require.NoError(t, err)
	assert.Equal(t, "unsolvable", task.Name)

	tf := &TaskFile{Goal: []string{"a"}}
	task, err = tf.Build()
	require.NoError(t, err)
	assert.Equal(t, "", task.Name)
}
