package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	service "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := startedService()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When a player is added, found, edited and deleted", func() {
			before, err := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), PageSize: 100})
			So(err, ShouldBeNil)

			created, err := svc.CreatePlayer(ctx, validDraft())
			So(err, ShouldBeNil)

			found, err := svc.ListPlayers(ctx, service.ListRequest{
				Search:   "test",
				Criteria: query.Criteria{Column: query.ColumnStatus, Operator: query.OpEquals, Value: "active"},
			})
			So(err, ShouldBeNil)

			leagues := model.ToggleLeague(created.Leagues, "League 3")
			edited, err := svc.PatchPlayer(ctx, created.ID, model.DraftPatch{Leagues: &leagues})
			So(err, ShouldBeNil)

			removed, err := svc.DeletePlayer(ctx, created.ID)
			So(err, ShouldBeNil)

			after, err := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), PageSize: 100})
			So(err, ShouldBeNil)

			Convey("Then every step observes the previous one", func() {
				So(found.Total, ShouldEqual, 1)
				So(found.Items[0].ID, ShouldEqual, created.ID)
				So(edited.Leagues, ShouldResemble, []string{"League 1", "League 3"})
				So(removed, ShouldBeTrue)
			})

			Convey("And the roster is back to where it started", func() {
				So(after, ShouldResemble, before)
			})
		})

		Convey("When starting and stopping multiple times", func() {
			for i := 0; i < 3; i++ {
				svc.Stop()
				So(svc.Start(ctx), ShouldBeNil)
			}

			Convey("Then the records survive restarts", func() {
				So(svc.GetStats().Players, ShouldEqual, 5)
			})
		})
	})

	Convey("Given a service with concurrent operations", t, func() {
		svc := startedService(service.WithSeed(false))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When multiple goroutines create and list players", func() {
			const writers = 20
			var wg sync.WaitGroup
			errs := make(chan error, writers*2)
			for i := 0; i < writers; i++ {
				wg.Add(2)
				go func(i int) {
					defer wg.Done()
					d := validDraft()
					d.Name = fmt.Sprintf("Player %d", i)
					if _, err := svc.CreatePlayer(ctx, d); err != nil {
						errs <- err
					}
				}(i)
				go func() {
					defer wg.Done()
					if _, err := svc.ListPlayers(ctx, service.ListRequest{Search: "player", Criteria: query.DefaultCriteria()}); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)

			Convey("Then all operations succeed with distinct ids", func() {
				So(len(errs), ShouldEqual, 0)
				page, err := svc.ListPlayers(ctx, service.ListRequest{Criteria: query.DefaultCriteria(), PageSize: 100})
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, writers)

				seen := map[int]bool{}
				for _, p := range page.Items {
					seen[p.ID] = true
				}
				So(len(seen), ShouldEqual, writers)
				So(svc.GetStats().MaxID, ShouldEqual, writers)
			})
		})
	})
}
