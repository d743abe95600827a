package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLinkLines(t *testing.T) {
	text := "https://a.example.com/doc\nftp://b.example.com\nplain text\n  http://c.example.com  \n\n"

	links := ParseLinkLines(text)

	require.Len(t, links, 2)
	require.Equal(t, "https://a.example.com/doc", links[0].URL)
	require.Equal(t, "http://c.example.com", links[1].URL)
}

func TestParseLinkLines_Empty(t *testing.T) {
	require.Empty(t, ParseLinkLines(""))
	require.Empty(t, ParseLinkLines("no links here\njust words"))
}

func TestAllowedFileName(t *testing.T) {
	require.True(t, allowedFileName("report.pdf"))
	require.True(t, allowedFileName("Scan.PDF"))
	require.True(t, allowedFileName("photo.jpeg"))
	require.True(t, allowedFileName("sheet.xlsx"))
	require.False(t, allowedFileName("malware.exe"))
	require.False(t, allowedFileName("archive.tar.gz"))
	require.False(t, allowedFileName("noextension"))
}
