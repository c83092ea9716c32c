package logging

import (
	"github.com/fernandosanchezjr/goscrambler/utils"
	"github.com/sirupsen/logrus"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	previous := utils.HomeFolder
	utils.HomeFolder = t.TempDir()
	defer func() {
		utils.HomeFolder = previous
		logrus.SetOutput(os.Stderr)
		exitHandler()
		logFile = nil
	}()
	if err := SetupLogger("info"); err != nil {
		t.Fatal(err)
	}
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logrus.GetLevel())
	}
	logrus.Info("logging test line")
	data, err := ioutil.ReadFile(path.Join(utils.HomeFolder, LogPath, LogFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "logging test line") {
		t.Fatalf("log file missing entry: %q", data)
	}
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	if err := SetupLogger("loud"); err == nil {
		t.Fatal("expected an error")
	}
}
