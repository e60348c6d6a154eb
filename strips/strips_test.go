package strips

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateIsCanonical(t *testing.T) {
	a := NewState("b", "a", "c", "a")
	b := NewState("c", "b", "a")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []Fact{"a", "b", "c"}, a.Facts())
	assert.Equal(t, "{a, b, c}", a.String())
}

func TestStateFactsIsACopy(t *testing.T) {
	s := NewState("a", "b")
	facts := s.Facts()
	facts[0] = "z"
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))
}

func TestEmptyState(t *testing.T) {
	var zero State
	assert.True(t, zero.Equal(NewState()))
	assert.Equal(t, "", zero.Key())
	assert.True(t, zero.ContainsAll(nil))
	assert.False(t, zero.Contains("a"))
}

func TestOperatorApply(t *testing.T) {
	op := NewOperator("move_B", []Fact{"at(A)"}, []Fact{"at(B)"}, []Fact{"at(A)"})
	s := NewState("at(A)", "alive")

	require.True(t, op.Applicable(s))
	next := op.Apply(s)
	assert.True(t, next.Equal(NewState("alive", "at(B)")))
	// the source state is untouched
	assert.True(t, s.Equal(NewState("at(A)", "alive")))

	assert.False(t, op.Applicable(next))
	assert.Equal(t, "<Op move_B>", op.String())
}

func TestOperatorAddWinsOverDelete(t *testing.T) {
	op := NewOperator("refresh", nil, []Fact{"token"}, []Fact{"token"})
	next := op.Apply(NewState("token"))
	assert.True(t, next.Contains("token"))
}

func TestOperatorLiteralUnsortedFacts(t *testing.T) {
	op := &Operator{
		Name: "swap",
		Pre:  []Fact{"b", "a"},
		Add:  []Fact{"d", "c"},
		Del:  []Fact{"b", "a"},
	}
	s := NewState("a", "b")
	require.True(t, op.Applicable(s))
	assert.True(t, op.Apply(s).Equal(NewState("c", "d")))
	assert.True(t, op.Apply(NewState("a", "b", "z")).Equal(NewState("c", "d", "z")))
}

func TestGroundTaskSuccessors(t *testing.T) {
	ops := []*Operator{
		NewOperator("exploit_web", []Fact{"reach(web)"}, []Fact{"shell(web)"}, nil),
		NewOperator("pivot_db", []Fact{"shell(web)"}, []Fact{"reach(db)"}, nil),
		NewOperator("scan", nil, []Fact{"scanned"}, nil),
	}
	task := NewGroundTask("net", []Fact{"reach(web)"}, []Fact{"reach(db)"}, ops)

	succ := task.SuccessorStates(task.InitialState())
	require.Len(t, succ, 2)
	assert.Equal(t, "exploit_web", succ[0].Op.Name)
	assert.Equal(t, "scan", succ[1].Op.Name)
	assert.False(t, task.GoalReached(task.InitialState()))
	assert.True(t, task.GoalReached(NewState("reach(db)", "reach(web)")))
}

func TestValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		task := NewGroundTask("ok", []Fact{"a"}, []Fact{"b"}, []*Operator{
			NewOperator("ab", []Fact{"a"}, []Fact{"b"}, nil),
		})
		warnings, err := task.Validate()
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})
	t.Run("duplicate", func(t *testing.T) {
		task := NewGroundTask("dup", nil, nil, []*Operator{
			NewOperator("x", nil, nil, nil),
			NewOperator("x", nil, nil, nil),
		})
		_, err := task.Validate()
		assert.ErrorIs(t, err, ErrInvalidTask)
	})
	t.Run("unnamed", func(t *testing.T) {
		task := NewGroundTask("unnamed", nil, nil, []*Operator{NewOperator("", nil, nil, nil)})
		_, err := task.Validate()
		assert.ErrorIs(t, err, ErrInvalidTask)
	})
	t.Run("unreachable", func(t *testing.T) {
		task := NewGroundTask("unreachable", []Fact{"a"}, []Fact{"root"}, []*Operator{
			NewOperator("needs_key", []Fact{"key"}, []Fact{"b"}, nil),
		})
		warnings, err := task.Validate()
		require.NoError(t, err)
		assert.Len(t, warnings, 2)
	})
}

func TestStateSerializeDeterministic(t *testing.T) {
	a := NewState("x", "y")
	b := NewState("y", "x")
	var bufA, bufB bytes.Buffer
	require.NoError(t, a.Serialize(&bufA))
	require.NoError(t, b.Serialize(&bufB))
	assert.Equal(t, bufA.Bytes(), bufB.Bytes())

	var back State
	require.NoError(t, back.Deserialize(&bufA))
	assert.True(t, back.Equal(a))
}
