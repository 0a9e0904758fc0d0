package repository

import "github.com/okian/roster/internal/domain/model"

// SeedPlayers returns the fixed dataset the roster starts with.
// A fresh slice is returned on every call.
func SeedPlayers() []model.Player {
	return []model.Player{
		{
			ID:          1,
			Name:        "Lionel Messi",
			DateOfBirth: model.MustParseDate("1987-06-24"),
			Leagues:     []string{"LaLiga", "League 1", "League 2"},
			Status:      model.StatusActive,
			Height:      1.70,
			Position:    model.PositionForward,
		},
		{
			ID:          2,
			Name:        "Cristiano Ronaldo",
			DateOfBirth: model.MustParseDate("1985-02-05"),
			Leagues:     []string{"LaLiga", "League 1"},
			Status:      model.StatusActive,
			Height:      1.87,
			Position:    model.PositionForward,
		},
		{
			ID:          3,
			Name:        "Thierry Henry",
			DateOfBirth: model.MustParseDate("1977-08-17"),
			Leagues:     []string{"League 1"},
			Status:      model.StatusRetired,
			Height:      1.87,
			Position:    model.PositionForward,
		},
		{
			ID:          4,
			Name:        "Zinedine Zidane",
			DateOfBirth: model.MustParseDate("1972-06-23"),
			Leagues:     []string{"League 2"},
			Status:      model.StatusRetired,
			Height:      1.87,
			Position:    model.PositionMidfielder,
		},
		{
			ID:          5,
			Name:        "Luka Modric",
			DateOfBirth: model.MustParseDate("1985-09-09"),
			Leagues:     []string{"League 1", "League 2"},
			Status:      model.StatusActive,
			Height:      1.87,
			Position:    model.PositionForward,
		},
	}
}
