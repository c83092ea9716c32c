package utils

import (
	"github.com/mitchellh/go-homedir"
	"os"
	"path"
)

var HomeFolder = "~/.goscrambler"

func GetHomeFolder() (string, error) {
	appHomeFolder, err := homedir.Expand(HomeFolder)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(appHomeFolder, 0700); err != nil {
		return "", err
	}
	return appHomeFolder, nil
}

func GetSubFolder(folderPath string) (string, error) {
	home, err := GetHomeFolder()
	if err != nil {
		return "", err
	}
	targetPath := path.Join(home, folderPath)
	if err := os.MkdirAll(targetPath, 0700); err != nil {
		return "", err
	}
	return targetPath, nil
}
