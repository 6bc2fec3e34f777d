package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

var input = bufio.NewReader(os.Stdin)

// SetInput redirects where prompts read answers from.
func SetInput(r io.Reader) {
	input = bufio.NewReader(r)
}

func readLine() (string, error) {
	response, err := input.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func PromptString(prompt string, def string) (string, error) {
	fmt.Printf("%s (%s): ", prompt, def)

	response, err := readLine()
	if err != nil {
		return "", err
	}

	if response == "" {
		return def, nil
	}

	return response, nil
}

func PromptYN(prompt string, def bool) (bool, error) {
	if def {
		fmt.Printf("%s (Y/n): ", prompt)
	} else {
		fmt.Printf("%s (y/N): ", prompt)
	}

	response, err := readLine()
	if err != nil {
		return false, err
	}

	if response == "" {
		return def, nil
	}

	return strings.ToLower(response) == "y", nil
}
