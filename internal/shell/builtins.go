package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// runBuiltin dispatches builtin commands. Every builtin recovers its own
// errors: a failure prints one line, sets the last status, and the shell
// carries on.
func (s *Shell) runBuiltin(args []string) bool {
	var (
		status int
		err    error
	)
	switch args[0] {
	case "cd":
		status, err = s.changeDirectory(args[1:])
	case "exit":
		s.quit = true
		return true
	case "history":
		status, err = s.showHistory()
	case "export":
		status, err = s.exportVar(args[1:])
	case "alias":
		status, err = s.setAlias(args[1:])
	case "set":
		status, err = s.setVariable(args[1:])
	case "jobs":
		status, err = s.jobsBuiltin()
	case "fg":
		status, err = s.fgBuiltin(args[1:])
	case "bg":
		status, err = s.bgBuiltin(args[1:])
	case "wait":
		status, err = s.waitBuiltin(args[1:])
	default:
		return false
	}

	if err != nil {
		s.errorf("%v", err)
	}
	s.lastStatus = status
	return true
}

func (s *Shell) changeDirectory(args []string) (int, error) {
	var dir string
	if len(args) == 0 {
		dir = s.config.HomeDir
	} else {
		dir = os.ExpandEnv(args[0])
	}

	if err := os.Chdir(dir); err != nil {
		return 1, fmt.Errorf("cd: %w", err)
	}
	var err error
	s.currentDir, err = os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("cd: %w", err)
	}
	return 0, nil
}

func (s *Shell) showHistory() (int, error) {
	for i, cmd := range s.history.GetAll() {
		s.printf("%d: %s\n", i+1, cmd)
	}
	return 0, nil
}

func (s *Shell) exportVar(args []string) (int, error) {
	k, v, err := splitAssignment("export", args)
	if err != nil {
		return 2, err
	}
	if err := os.Setenv(k, v); err != nil {
		return 1, fmt.Errorf("export: %w", err)
	}
	return 0, nil
}

func (s *Shell) setAlias(args []string) (int, error) {
	if len(args) == 0 {
		for k, v := range s.aliases {
			s.printf("alias %s=%s\n", k, v)
		}
		return 0, nil
	}
	k, v, err := splitAssignment("alias", args)
	if err != nil {
		return 2, err
	}
	s.aliases[k] = v
	return 0, nil
}

func (s *Shell) setVariable(args []string) (int, error) {
	k, v, err := splitAssignment("set", args)
	if err != nil {
		return 2, err
	}
	s.variables[k] = v
	return 0, nil
}

func splitAssignment(builtin string, args []string) (string, string, error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("%s: expected NAME=VALUE", builtin)
	}
	kv := strings.SplitN(args[0], "=", 2)
	if len(kv) != 2 || kv[0] == "" {
		return "", "", fmt.Errorf("%s: expected NAME=VALUE", builtin)
	}
	return kv[0], kv[1], nil
}

func parseJobID(builtin, arg string) (int, error) {
	arg = strings.TrimPrefix(arg, "%")
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: %s: invalid job id", builtin, arg)
	}
	return id, nil
}
