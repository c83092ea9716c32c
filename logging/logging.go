package logging

import (
	"github.com/fernandosanchezjr/goscrambler/utils"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path"
)

const (
	LogPath = "logs"
	LogFile = "log.out"
)

var logFile *os.File

func openLogFile() (*os.File, error) {
	logFolder, err := utils.GetSubFolder(LogPath)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(path.Join(logFolder, LogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func exitHandler() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// SetupLogger installs the text formatter at the named level and tees output
// to stdout and the log file in the home folder. Without a usable log file
// only stdout is written.
func SetupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	logrus.RegisterExitHandler(exitHandler)
	logrus.SetLevel(lvl)
	if f, err := openLogFile(); err != nil {
		logrus.SetOutput(os.Stdout)
		logrus.WithError(err).Warn("Error opening log file")
	} else {
		logFile = f
		logrus.SetOutput(io.MultiWriter(logFile, os.Stdout))
	}
	return nil
}
