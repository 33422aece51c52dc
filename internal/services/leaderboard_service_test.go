package services

import (
	"testing"

	"weigh-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standing(id int, name string, count int, earnings int64) *models.WorkerStanding {
	return &models.WorkerStanding{WorkerID: id, WorkerName: name, EntryCount: count, Earnings: earnings}
}

func TestAssemble_ordersByCountThenEarnings(t *testing.T) {
	s := &LeaderboardService{}

	board := s.assemble(WindowAllTime, []*models.WorkerStanding{
		standing(1, "Andi", 10, 10000),
		standing(2, "Budi", 25, 30000),
		standing(3, "Citra", 10, 50000),
	}, 0, 0)

	require.Len(t, board.Standings, 3)
	assert.Equal(t, 2, board.Standings[0].WorkerID)
	assert.Equal(t, 3, board.Standings[1].WorkerID) // equal count, higher earnings
	assert.Equal(t, 1, board.Standings[2].WorkerID)
}

func TestAssemble_tiedCountDistinctConsecutiveRanks(t *testing.T) {
	s := &LeaderboardService{}

	board := s.assemble(WindowDaily, []*models.WorkerStanding{
		standing(1, "Andi", 10, 10000),
		standing(2, "Budi", 10, 50000),
	}, 0, 0)

	require.Len(t, board.Standings, 2)
	assert.Equal(t, 2, board.Standings[0].WorkerID)
	assert.Equal(t, 1, board.Standings[0].Rank)
	assert.Equal(t, 2, board.Standings[1].Rank, "tied counts must still hold distinct consecutive ranks")
}

func TestAssemble_fullTieStaysPositional(t *testing.T) {
	s := &LeaderboardService{}

	board := s.assemble(WindowAllTime, []*models.WorkerStanding{
		standing(5, "Andi", 10, 10000),
		standing(3, "Budi", 10, 10000),
	}, 0, 0)

	// Full ties order by worker id and still occupy distinct positions.
	assert.Equal(t, 3, board.Standings[0].WorkerID)
	assert.Equal(t, 1, board.Standings[0].Rank)
	assert.Equal(t, 2, board.Standings[1].Rank)
}

func TestAssemble_selfRankOutsideTopN(t *testing.T) {
	s := &LeaderboardService{}

	board := s.assemble(WindowAllTime, []*models.WorkerStanding{
		standing(1, "Andi", 50, 0),
		standing(2, "Budi", 40, 0),
		standing(3, "Citra", 30, 0),
		standing(4, "Dewi", 20, 0),
	}, 2, 4)

	require.Len(t, board.Standings, 2, "board trimmed to limit")
	require.NotNil(t, board.SelfRank)
	assert.Equal(t, 4, board.SelfRank.WorkerID)
	assert.Equal(t, 4, board.SelfRank.Rank, "self rank comes from the full list, not the trimmed board")
}

func TestAssemble_selfAbsent(t *testing.T) {
	s := &LeaderboardService{}

	board := s.assemble(WindowDaily, []*models.WorkerStanding{
		standing(1, "Andi", 5, 0),
	}, 0, 99)

	assert.Nil(t, board.SelfRank)
}
