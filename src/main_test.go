package src

import (
	"testing"

	"github.com/journeo/coverd/src/assert"
)

func TestParseFlags(t *testing.T) {
	args, err := parseFlags([]string{
		"-config", "/tmp/coverd.json",
		"-listen", ":8080",
		"-resolve", "Voyage à Bruges",
		"-season", "HIVER",
	})
	assert.NilErr(t, err)

	assert.Equal(t, "/tmp/coverd.json", args.configPath)
	assert.Equal(t, ":8080", args.listen)
	assert.Equal(t, "Voyage à Bruges", args.resolve)
	assert.Equal(t, "HIVER", args.season)
	assert.Equal(t, false, args.showVersion)
}

func TestParseFlagsDefaults(t *testing.T) {
	args, err := parseFlags(nil)
	assert.NilErr(t, err)
	assert.Equal(t, flags{}, args)

	args, err = parseFlags([]string{"-v"})
	assert.NilErr(t, err)
	assert.Equal(t, true, args.showVersion)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags([]string{"-season", "winter"})
	assert.NotNilErr(t, err)

	_, err = parseFlags([]string{"-no-such-flag"})
	assert.NotNilErr(t, err)
}
