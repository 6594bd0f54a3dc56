package utils

import (
	"bufio"
	"bytes"
	"os/exec"

	"github.com/ansel1/merry/v2"
)

// ExecuteCmd runs cmd, streaming stdout line-by-line through outputCallback
// (may be nil) and returning the full stdout at the end. Stderr is buffered
// and folded into the error on a non-zero exit.
func ExecuteCmd(cmd *exec.Cmd, outputCallback func(string)) (string, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", merry.Prepend(err, "stdout pipe")
	}

	errorBytes := bytes.Buffer{}
	cmd.Stderr = &errorBytes

	if err := cmd.Start(); err != nil {
		return "", merry.Prepend(err, "start failed")
	}

	var result string

	scanner := bufio.NewScanner(stdout)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := scanner.Text()
		result += line + "\n"
		if outputCallback != nil {
			outputCallback(line)
		}
	}

	if err := cmd.Wait(); err != nil {
		return "", merry.Prepend(err, "execution failed: "+errorBytes.String())
	}

	return result, nil
}
