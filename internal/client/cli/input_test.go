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
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetMultiline_EOFWithoutEmptyLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("only"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	assert.Error(t, err)
}

func TestOptionalParsers(t *testing.T) {
	assert.Nil(t, optionalString(""))
	assert.Equal(t, "x", *optionalString("x"))

	n, err := optionalInt("90")
	require.NoError(t, err)
	assert.Equal(t, 90, *n)
	n, err = optionalInt("")
	require.NoError(t, err)
	assert.Nil(t, n)
	_, err = optionalInt("1.5")
	assert.Error(t, err)

	f, err := optionalFloat("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, *f)
	_, err = optionalFloat("lots")
	assert.Error(t, err)

	b, err := optionalBool("Y")
	require.NoError(t, err)
	assert.True(t, *b)
	b, err = optionalBool("no")
	require.NoError(t, err)
	assert.False(t, *b)
	b, err = optionalBool("")
	require.NoError(t, err)
	assert.Nil(t, b)
	_, err = optionalBool("maybe")
	assert.Error(t, err)
}
