package dataset

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		line string
		want rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a b c", ' '},
		{"a;b,c", ','},
		{"a b;c", ';'},
		{",a;b", ';'},
		{"single", ','},
	}
	for _, c := range cases {
		require.Equal(t, c.want, DetectDelimiter(c.line), "line %q", c.line)
	}
}

func TestRead_Delimiters(t *testing.T) {
	for _, in := range []string{
		"a,x\na,y\nb,x\n",
		"a;x\na;y\nb;x\n",
		"a x\na y\nb x",
		"a, x\r\na, y\r\n\r\nb, x\r\n",
	} {
		tbl, err := Read(strings.NewReader(in), ReadOptions{})
		require.NoError(t, err, "input %q", in)
		require.Equal(t, [][]string{{"a", "x"}, {"a", "y"}, {"b", "x"}}, tbl.Rows, "input %q", in)
		require.Equal(t, []string{"d0", "d1"}, tbl.Names)
	}
}

func TestRead_Header(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ncity;product\nparis;tea\nrome;coffee\n"), ReadOptions{HasHeader: true})
	require.NoError(t, err)
	require.Equal(t, ';', tbl.Delimiter)
	require.Equal(t, []string{"city", "product"}, tbl.Names)
	require.Len(t, tbl.Rows, 2)
}

func TestRead_SingleColumn(t *testing.T) {
	tbl, err := Read(strings.NewReader("a\nb\na\n"), ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a"}, {"b"}, {"a"}}, tbl.Rows)
}

func TestRead_NoData(t *testing.T) {
	for _, in := range []string{"", "\n\n", "only,header\n"} {
		_, err := Read(strings.NewReader(in), ReadOptions{HasHeader: strings.Contains(in, "header")})
		require.ErrorIs(t, err, ErrNoData, "input %q", in)
	}
}

func TestRead_MalformedRow(t *testing.T) {
	_, err := Read(strings.NewReader("a,b,c\nd,e\n"), ReadOptions{})
	require.ErrorIs(t, err, ErrMalformedRow)
	require.Contains(t, err.Error(), "line 2")

	_, err = Read(strings.NewReader("a,b\nc,d,e\n"), ReadOptions{})
	require.ErrorIs(t, err, ErrMalformedRow)

	_, err = Read(strings.NewReader("x,y,z\na,b\n"), ReadOptions{HasHeader: true})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestRead_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Read(iotest.ErrReader(boom), ReadOptions{})
	require.ErrorIs(t, err, boom)
}

func TestRead_QuotesAreLiteral(t *testing.T) {
	tbl, err := Read(strings.NewReader("a,\"b\nc,d\n"), ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "\"b"}, {"c", "d"}}, tbl.Rows)

	tbl, err = Read(strings.NewReader("\"x,y\",z\nu,v,w\n"), ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"\"x", "y\"", "z"}, {"u", "v", "w"}}, tbl.Rows)

	// A quote opening a field never swallows the following lines.
	_, err = Read(strings.NewReader("a,\"b\nc,d,e\n"), ReadOptions{})
	require.ErrorIs(t, err, ErrMalformedRow)
	require.Contains(t, err.Error(), "line 2")
}

func TestRead_OneTuplePerLine(t *testing.T) {
	in := "p;\"q\nr;s\n\"t;u\n   \nv;w\n"
	tbl, err := Read(strings.NewReader(in), ReadOptions{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 4)
	require.Equal(t, []string{"\"t", "u"}, tbl.Rows[2])
}

func TestRead_LongLine(t *testing.T) {
	long := strings.Repeat("x", 100_000)
	tbl, err := Read(strings.NewReader(long+",a\nb,c\n"), ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, long, tbl.Rows[0][0])
}
