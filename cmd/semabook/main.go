// semabook runs the Rendezvous, Mutex, Multiplex and Barrier
// demonstrations in order and exits 0, or exits 1 on any argument,
// bad configuration or broken invariant.
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	return log
}

func run(args []string, stdout, stderr io.Writer) int {
	return execute(args, stdout, stderr, newLogger(stderr))
}

func execute(args []string, stdout, stderr io.Writer, log *logrus.Logger) int {
	cmd := newRootCmd(stdout, stderr, log)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		// Cobra has already reported argument errors itself.
		if cmd.SilenceErrors {
			log.WithError(err).Error("semabook failed")
		}
		return 1
	}
	return 0
}
