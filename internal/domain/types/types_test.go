package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/roster/internal/domain/model"
	types "github.com/okian/roster/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPlayerView(t *testing.T) {
	Convey("Given a stored player", t, func() {
		p := model.Player{
			ID:          4,
			Name:        "Zinedine Zidane",
			DateOfBirth: model.MustParseDate("1972-06-23"),
			Leagues:     []string{"League 2"},
			Status:      model.StatusRetired,
			Height:      1.87,
			Position:    model.PositionMidfielder,
		}

		Convey("When viewed the day before the birthday", func() {
			v := types.NewPlayerView(p, time.Date(2024, 6, 22, 12, 0, 0, 0, time.UTC))

			Convey("Then the age counts whole years only", func() {
				So(v.Age, ShouldEqual, 51)
			})
		})

		Convey("When viewed on the birthday", func() {
			v := types.NewPlayerView(p, time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC))
			So(v.Age, ShouldEqual, 52)
		})

		Convey("When encoded as JSON", func() {
			v := types.NewPlayerView(p, time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC))
			raw, err := json.Marshal(v)
			So(err, ShouldBeNil)

			var m map[string]any
			So(json.Unmarshal(raw, &m), ShouldBeNil)

			Convey("Then player fields are flattened next to the age", func() {
				So(m["id"], ShouldEqual, 4.0)
				So(m["name"], ShouldEqual, "Zinedine Zidane")
				So(m["dateOfBirth"], ShouldEqual, "1972-06-23")
				So(m["position"], ShouldEqual, "Midfielder")
				So(m["age"], ShouldEqual, 52.0)
			})
		})
	})
}

func TestPage(t *testing.T) {
	Convey("Given an empty page", t, func() {
		raw, err := json.Marshal(types.Page{Items: []types.PlayerView{}, Page: 1, PageSize: 5})
		So(err, ShouldBeNil)

		Convey("Then the wire keys use snake case and items is an array", func() {
			So(string(raw), ShouldContainSubstring, `"items":[]`)
			So(string(raw), ShouldContainSubstring, `"page_size":5`)
			So(string(raw), ShouldContainSubstring, `"page_count":0`)
			So(string(raw), ShouldContainSubstring, `"has_next":false`)
		})
	})
}
