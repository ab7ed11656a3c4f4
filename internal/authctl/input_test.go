package authctl

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	oldRead, oldIs := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldIs })

	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("password123"), nil)

	var out bytes.Buffer
	got, err := getPassword(0, bufio.NewReader(strings.NewReader("ignored\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, "password123", got)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))

	var out bytes.Buffer
	_, err := getPassword(0, bufio.NewReader(strings.NewReader("")), &out)
	assert.Error(t, err)
}

func TestGetPassword_Piped(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "newline", input: "password123\n", want: "password123"},
		{name: "crlf", input: "password123\r\n", want: "password123"},
		{name: "eof without newline", input: "password123", want: "password123"},
		{name: "keeps spaces", input: " pass word \n", want: " pass word "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := getPassword(0, bufio.NewReader(strings.NewReader(tt.input)), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetPassword_PipedEmpty(t *testing.T) {
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	_, err := getPassword(0, bufio.NewReader(strings.NewReader("")), &out)
	assert.Error(t, err)
}
