package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckValidFormulaExitsOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runArgs([]string{"check", "--formula", "exists a ( a -> [0] a )"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "valid\n", stdout.String())
}

func TestCheckZetaNegatedQuantifierExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runArgs([]string{"check", "--boundary", "zeta", "--formula", "exists !a ( a -> [0] a )"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, stderr.String())
}

func TestCheckReadsFormulaFromStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runArgs([]string{"check"}, strings.NewReader("exists a ( a -> [0] a )"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "valid\n", stdout.String())
}

func TestCheckUnknownBoundaryExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runArgs([]string{"check", "--boundary", "bogus", "--formula", "exists a ( a -> [0] a )"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown boundary")
}

func TestConvertRoundTripsBuechiThroughStdout(t *testing.T) {
	var buechi bytes.Buffer
	code := runArgs([]string{"dot", "--kind", "buechi"}, strings.NewReader(sampleBuechi), &buechi, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.Contains(t, buechi.String(), "digraph")

	var stdout, stderr bytes.Buffer
	code = runArgs([]string{"convert", "--from", "buechi", "--to", "buechi"}, strings.NewReader(sampleBuechi), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, stdout.String())
}

func TestConvertUnknownFormatExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runArgs([]string{"convert", "--from", "bogus"}, strings.NewReader(sampleBuechi), &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown input format")
}

func TestDotUnknownKindExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runArgs([]string{"dot", "--kind", "bogus"}, strings.NewReader(sampleBuechi), &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown automaton kind")
}

// sampleBuechi is the "a infinitely often" automaton in BUECHI format:
// 2 states, alphabet size 2, 4 transitions, initial state {1}, accepting
// state {2}.
const sampleBuechi = `BUECHI
2
2
4
1 1 2
1 2 1
2 1 1
2 2 1
1
2
`
