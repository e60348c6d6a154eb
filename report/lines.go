package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// LineWriter turns zerolog events into "LEVEL:message" lines. A message
// spanning several lines is split so every output line carries its level.
// Extra fields follow the last line as key=value pairs in sorted key order.
type LineWriter struct {
	Out io.Writer
}

var levelNames = map[string]string{
	zerolog.LevelTraceValue: "DEBUG",
	zerolog.LevelDebugValue: "DEBUG",
	zerolog.LevelInfoValue:  "INFO",
	zerolog.LevelWarnValue:  "WARNING",
	zerolog.LevelErrorValue: "ERROR",
	zerolog.LevelFatalValue: "ERROR",
	zerolog.LevelPanicValue: "ERROR",
}

func (w LineWriter) Write(p []byte) (int, error) {
	return w.console().Write(p)
}

func (w LineWriter) console() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           w.Out,
		NoColor:       true,
		PartsOrder:    []string{zerolog.MessageFieldName},
		FormatPrepare: prefixLines,
		FormatMessage: func(i any) string {
			s, _ := i.(string)
			return s
		},
	}
}

// prefixLines folds the level into the message, once per message line.
func prefixLines(evt map[string]any) error {
	level := "INFO"
	if lv, ok := evt[zerolog.LevelFieldName].(string); ok {
		if name, ok := levelNames[lv]; ok {
			level = name
		}
	}
	msg := ""
	if m, ok := evt[zerolog.MessageFieldName]; ok && m != nil {
		msg = fmt.Sprint(m)
	}
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	for i, l := range lines {
		lines[i] = level + ":" + l
	}
	evt[zerolog.MessageFieldName] = strings.Join(lines, "\n")
	return nil
}
