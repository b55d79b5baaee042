package emitter

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type logger struct {
	logger *log.Logger
	file   *os.File
}

func newLogger(path string) (*logger, error) {
	return newLoggerWithOutput(os.Stdout, path)
}

func newLoggerWithOutput(out io.Writer, path string) (*logger, error) {
	if path == "" {
		lg := log.New(out, "", log.LstdFlags)
		return &logger{logger: lg}, nil
	}
	dir := filepath.Dir(path)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return nil, err
	}
	lg := log.New(io.MultiWriter(out, file), "", log.LstdFlags)
	return &logger{logger: lg, file: file}, nil
}

func (l *logger) println(level string, v ...interface{}) {
	buf := bytes.NewBuffer(make([]byte, 0, 64))
	buf.WriteString(level)
	buf.WriteString(sprintln(v...))
	l.logger.Print(buf)
}

func (l *logger) printf(level, format string, v ...interface{}) {
	buf := bytes.NewBuffer(make([]byte, 0, 64))
	buf.WriteString(level)
	_, _ = fmt.Fprintf(buf, format, v...)
	l.logger.Print(buf)
}

// sprintln is fmt.Sprintln without the trailing new line,
// log.Logger appends it.
func sprintln(v ...interface{}) string {
	s := fmt.Sprintln(v...)
	return s[:len(s)-1]
}

func (l *logger) Infof(format string, v ...interface{}) {
	l.printf("[info] ", format, v...)
}

func (l *logger) Warning(v ...interface{}) {
	l.println("[warning] ", v...)
}

func (l *logger) Error(v ...interface{}) {
	l.println("[error] ", v...)
}

func (l *logger) Fatal(v ...interface{}) {
	l.println("[fatal] ", v...)
}

func (l *logger) Close() error {
	var err error
	if l.file != nil {
		err = l.file.Close()
		if err != nil {
			l.Error("failed to close log file:", err)
		}
	}
	l.logger.SetOutput(io.Discard)
	return err
}
