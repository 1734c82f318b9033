package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  a@b.c \n"), "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got)
	assert.Equal(t, "Enter email\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Title", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Title", &out)
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"crlf", "a\r\nb\r\n\r\n", "a\nb"},
		{"immediate blank", "\n", ""},
		{"eof without blank line", "a\nb", "a\nb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tc.input), "Content", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

type failingReader struct {
	data string
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestGetMultiline_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r := bufio.NewReader(&failingReader{data: "first line\npartial", err: boom})

	var out bytes.Buffer
	got, err := GetMultiline(r, "Content", &out)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword("Enter password", &out)
	require.Error(t, err)
}

func TestLineReader_SharesInputWithPrompts(t *testing.T) {
	r := rdr("post create\nMy title\nbody\n\nexit\n")
	sc := bufio.NewScanner(&lineReader{r: r})

	require.True(t, sc.Scan())
	assert.Equal(t, "post create", sc.Text())

	var out bytes.Buffer
	title, err := GetSimpleText(r, "Title", &out)
	require.NoError(t, err)
	assert.Equal(t, "My title", title)

	content, err := GetMultiline(r, "Content", &out)
	require.NoError(t, err)
	assert.Equal(t, "body", content)

	require.True(t, sc.Scan())
	assert.Equal(t, "exit", sc.Text())
	assert.False(t, sc.Scan())
}
