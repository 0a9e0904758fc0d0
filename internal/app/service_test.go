package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/okian/roster/internal/adapters/repository"
	service "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/query"
	"github.com/okian/roster/internal/domain/validation"
	"github.com/okian/roster/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func startedService(opts ...service.Option) *service.Service {
	opts = append([]service.Option{service.WithClock(func() time.Time { return fixedNow })}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func validDraft() model.Draft {
	return model.Draft{
		Name:        "Test",
		DateOfBirth: "2000-01-01",
		Leagues:     []string{"League 1"},
		Status:      "Active",
		Height:      "1.80",
		Position:    "Forward",
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats.PageSize, ShouldEqual, 5)
			So(stats.MaxPageSize, ShouldEqual, 100)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithPageSize(10),
			service.WithMaxPageSize(3),
			service.WithSeed(false),
		)

		Convey("Then the cap never drops below the page size", func() {
			stats := svc.GetStats()
			So(stats.PageSize, ShouldEqual, 10)
			So(stats.MaxPageSize, ShouldEqual, 10)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When calling methods before Start", func() {
			_, err := svc.ListPlayers(context.Background(), service.ListRequest{})

			Convey("Then they report the service is not started", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start with the seed roster", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats.Running, ShouldBeTrue)
				So(stats.Players, ShouldEqual, 5)
				So(stats.MaxID, ShouldEqual, 5)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats().Players, ShouldEqual, 5)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats().Running, ShouldBeFalse)
			})
		})
	})

	Convey("Given a service without seed", t, func() {
		svc := startedService(service.WithSeed(false))
		defer svc.Stop()

		So(svc.GetStats().Players, ShouldEqual, 0)
	})

	Convey("Given an injected store", t, func() {
		store := repository.NewMemoryStore()
		svc := startedService(service.WithStore(store))
		defer svc.Stop()

		_, err := svc.CreatePlayer(context.Background(), validDraft())
		So(err, ShouldBeNil)
		So(store.Count(context.Background()), ShouldEqual, 1)
	})
}

func TestService_ListPlayers(t *testing.T) {
	Convey("Given a started service over the seed roster", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When listing with defaults", func() {
			page, err := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria()})

			Convey("Then the first page holds every seed player", func() {
				So(err, ShouldBeNil)
				So(page.Page, ShouldEqual, 1)
				So(page.PageSize, ShouldEqual, 5)
				So(page.PageCount, ShouldEqual, 1)
				So(page.Total, ShouldEqual, 5)
				So(page.HasPrev, ShouldBeFalse)
				So(page.HasNext, ShouldBeFalse)
				So(len(page.Items), ShouldEqual, 5)
				So(page.Items[0].Name, ShouldEqual, "Lionel Messi")
				So(page.Items[0].Age, ShouldEqual, 36)
			})
		})

		Convey("When asking for page 2 of a single page", func() {
			page, err := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), Page: 2})

			Convey("Then page 1 is shown", func() {
				So(err, ShouldBeNil)
				So(page.Page, ShouldEqual, 1)
				So(len(page.Items), ShouldEqual, 5)
			})
		})

		Convey("When paging two at a time", func() {
			page, err := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), Page: 3, PageSize: 2})

			Convey("Then the last page is short", func() {
				So(err, ShouldBeNil)
				So(page.PageCount, ShouldEqual, 3)
				So(page.Page, ShouldEqual, 3)
				So(len(page.Items), ShouldEqual, 1)
				So(page.Items[0].Name, ShouldEqual, "Luka Modric")
				So(page.HasPrev, ShouldBeTrue)
				So(page.HasNext, ShouldBeFalse)
			})
		})

		Convey("When the page size exceeds the cap", func() {
			svc := startedService(service.WithMaxPageSize(10))
			page, _ := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), PageSize: 500})
			So(page.PageSize, ShouldEqual, 10)
		})

		Convey("When searching for messi", func() {
			page, err := svc.ListPlayers(ctx, service.ListRequest{Search: "messi", Criteria: query.DefaultCriteria()})

			Convey("Then the page count follows the filtered result", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 1)
				So(page.PageCount, ShouldEqual, 1)
				So(page.Items[0].ID, ShouldEqual, 1)
			})
		})

		Convey("When nothing matches", func() {
			page, err := svc.ListPlayers(ctx, service.ListRequest{Search: "nobody", Criteria: query.DefaultCriteria()})

			Convey("Then the page is empty but well formed", func() {
				So(err, ShouldBeNil)
				So(page.Items, ShouldNotBeNil)
				So(page.Items, ShouldBeEmpty)
				So(page.PageCount, ShouldEqual, 0)
				So(page.Page, ShouldEqual, 1)
			})
		})
	})
}

func TestService_Mutations(t *testing.T) {
	Convey("Given a started service over the seed roster", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When creating a valid player", func() {
			p, err := svc.CreatePlayer(ctx, validDraft())

			Convey("Then it gets the next id and is listed last", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, 6)
				page, _ := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), Page: 2})
				So(page.Page, ShouldEqual, 2)
				So(page.Items[0].Name, ShouldEqual, "Test")
			})
		})

		Convey("When creating a player with a blank name", func() {
			d := validDraft()
			d.Name = ""
			_, err := svc.CreatePlayer(ctx, d)

			Convey("Then the field error is returned and nothing is stored", func() {
				var errs validation.Errors
				So(errors.As(err, &errs), ShouldBeTrue)
				So(errs, ShouldResemble, validation.Errors{"name": "Name is required"})
				So(svc.GetStats().Players, ShouldEqual, 5)
			})
		})

		Convey("When replacing a player", func() {
			d := validDraft()
			d.Name = "Renamed"
			p, err := svc.ReplacePlayer(ctx, 3, d)

			Convey("Then every field is overwritten but the id", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, 3)
				So(p.Name, ShouldEqual, "Renamed")
				So(p.Status, ShouldEqual, model.StatusActive)
			})
		})

		Convey("When replacing an unknown player", func() {
			_, err := svc.ReplacePlayer(ctx, 99, validDraft())
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			So(svc.GetStats().Players, ShouldEqual, 5)
		})

		Convey("When patching a player's status", func() {
			status := "injured"
			p, err := svc.PatchPlayer(ctx, 5, model.DraftPatch{Status: &status})

			Convey("Then other fields are kept", func() {
				So(err, ShouldBeNil)
				So(p.Status, ShouldEqual, model.StatusInjured)
				So(p.Name, ShouldEqual, "Luka Modric")
				So(p.Leagues, ShouldResemble, []string{"League 1", "League 2"})
				So(p.Height, ShouldEqual, 1.87)
			})
		})

		Convey("When a patch makes the form invalid", func() {
			height := model.NumberText("tall")
			_, err := svc.PatchPlayer(ctx, 5, model.DraftPatch{Height: &height})

			Convey("Then the merged form is rejected", func() {
				var errs validation.Errors
				So(errors.As(err, &errs), ShouldBeTrue)
				So(errs, ShouldContainKey, "height")
				v, _ := svc.GetPlayer(ctx, 5)
				So(v.Height, ShouldEqual, 1.87)
			})
		})

		Convey("When patching an unknown player", func() {
			name := "Ghost"
			_, err := svc.PatchPlayer(ctx, 42, model.DraftPatch{Name: &name})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})

		Convey("When deleting a player twice", func() {
			first, err1 := svc.DeletePlayer(ctx, 2)
			second, err2 := svc.DeletePlayer(ctx, 2)

			Convey("Then only the first removes a record", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldBeTrue)
				So(second, ShouldBeFalse)
				So(svc.GetStats().Players, ShouldEqual, 4)
				_, err := svc.GetPlayer(ctx, 2)
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Leagues(t *testing.T) {
	Convey("Given the league catalog", t, func() {
		svc := service.New()
		leagues := svc.Leagues()
		leagues[0] = "Changed"

		Convey("Then callers get a copy", func() {
			So(svc.Leagues(), ShouldResemble, model.KnownLeagues)
			So(svc.Leagues()[0], ShouldEqual, "La Liga")
		})
	})
}
