package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMatchResultScopedPerWallet(t *testing.T) {
	svc := NewMatchService(newTestDB(t))

	_, err := svc.SaveMatchResult("0xalice", "0xbob", 80)
	require.NoError(t, err)
	_, err = svc.SaveMatchResult("0xcarol", "0xdave", 50)
	require.NoError(t, err)

	aliceMatches, err := svc.MatchesFor("0xalice")
	require.NoError(t, err)
	require.Len(t, aliceMatches, 1)
	assert.Equal(t, "0xbob", aliceMatches[0].MatchedWith)
	assert.EqualValues(t, 80, aliceMatches[0].Compatibility)

	carolMatches, err := svc.MatchesFor("0xcarol")
	require.NoError(t, err)
	require.Len(t, carolMatches, 1)
	assert.Equal(t, "0xdave", carolMatches[0].MatchedWith)
}

func TestSaveMatchResultNormalizesBothAddresses(t *testing.T) {
	svc := NewMatchService(newTestDB(t))

	_, err := svc.SaveMatchResult("0xALICE", "0xBoB", 42)
	require.NoError(t, err)

	matches, err := svc.MatchesFor("0xalice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "0xalice", matches[0].WalletAddress)
	assert.Equal(t, "0xbob", matches[0].MatchedWith)
}

func TestMatchesForCappedAtTen(t *testing.T) {
	svc := NewMatchService(newTestDB(t))

	for i := 0; i < 12; i++ {
		_, err := svc.SaveMatchResult("0xalice", fmt.Sprintf("0xother%d", i), int64(i))
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	matches, err := svc.MatchesFor("0xalice")
	require.NoError(t, err)
	require.Len(t, matches, MatchResultsLimit)

	// Newest first: the last saved result leads
	assert.Equal(t, "0xother11", matches[0].MatchedWith)
	assert.Equal(t, "0xother2", matches[len(matches)-1].MatchedWith)
}

func TestSaveMatchResultDoesNotRangeCheck(t *testing.T) {
	svc := NewMatchService(newTestDB(t))

	// The contract owns the 0–100 semantics; the cache stores what it
	// was given.
	_, err := svc.SaveMatchResult("0xalice", "0xbob", 250)
	require.NoError(t, err)

	matches, err := svc.MatchesFor("0xalice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.EqualValues(t, 250, matches[0].Compatibility)
}
