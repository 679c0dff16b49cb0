package utils

import (
	"os"
	"path/filepath"
)

// 额外的搜索目录, 用于寻找 mmdb 和 relay list 等文件
var ExtraSearchPath string

func FileExist(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}

// GetFilePath searches fileName in the following places and returns the first hit:
//  0. absolute path, returned directly
//  1. ExtraSearchPath
//  2. same folder as the executable
//  3. working folder
//
// 都找不到则返回 ""
func GetFilePath(fileName string) string {
	if fileName == "" {
		return ""
	}
	if filepath.IsAbs(fileName) {
		return fileName
	}

	var dirs []string
	if ExtraSearchPath != "" {
		dirs = append(dirs, ExtraSearchPath)
	}
	if execFile, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execFile))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}

	for _, d := range dirs {
		p := filepath.Join(d, fileName)
		if FileExist(p) {
			return p
		}
	}
	return ""
}
