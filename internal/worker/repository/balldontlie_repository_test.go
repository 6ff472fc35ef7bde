package repository

import (
	"testing"

	"gary-picks-engine/internal/worker/dto"

	"github.com/stretchr/testify/assert"
)

func TestMatchPlayerID(t *testing.T) {
	tests := []struct {
		name       string
		players    []dto.BDLPlayer
		playerName string
		wantID     int
		wantOK     bool
	}{
		{
			name: "exact full name match",
			players: []dto.BDLPlayer{
				{ID: 1, FirstName: "Jayson", LastName: "Tatum"},
				{ID: 2, FirstName: "Jaylen", LastName: "Brown"},
			},
			playerName: "Jayson Tatum",
			wantID:     1,
			wantOK:     true,
		},
		{
			name: "case-insensitive full name match",
			players: []dto.BDLPlayer{
				{ID: 1, FirstName: "Jayson", LastName: "Tatum"},
			},
			playerName: "jayson tatum",
			wantID:     1,
			wantOK:     true,
		},
		{
			name: "lone result with matching last name",
			players: []dto.BDLPlayer{
				{ID: 3, FirstName: "Nikola", LastName: "Jokic"},
			},
			playerName: "N. Jokic",
			wantID:     3,
			wantOK:     true,
		},
		{
			name: "lone result with a different name is rejected",
			players: []dto.BDLPlayer{
				{ID: 4, FirstName: "Jrue", LastName: "Holiday"},
			},
			playerName: "Jayson Tatum",
			wantOK:     false,
		},
		{
			name: "ambiguous results without an exact match",
			players: []dto.BDLPlayer{
				{ID: 5, FirstName: "Gary", LastName: "Payton"},
				{ID: 6, FirstName: "Gary", LastName: "Payton II"},
			},
			playerName: "G. Payton",
			wantOK:     false,
		},
		{
			name:       "no results",
			players:    nil,
			playerName: "Jayson Tatum",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := matchPlayerID(tt.players, tt.playerName)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}
