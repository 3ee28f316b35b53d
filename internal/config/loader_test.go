package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/pulse/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		_ = os.Setenv("PULSE_ADDR", ":8088")
		_ = os.Setenv("PULSE_CACHE_TTL_SECONDS", "60")
		_ = os.Setenv("PULSE_SHAREPOINT__TENANT_ID", "tenant-123")
		defer func() {
			_ = os.Unsetenv("PULSE_ADDR")
			_ = os.Unsetenv("PULSE_CACHE_TTL_SECONDS")
			_ = os.Unsetenv("PULSE_SHAREPOINT__TENANT_ID")
		}()

		Convey("When the config is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over defaults, nested keys included", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8088")
				So(cfg.CacheTTLSeconds, ShouldEqual, 60)
				So(cfg.SharePoint.TenantID, ShouldEqual, "tenant-123")

				Convey("And untouched defaults survive", func() {
					So(cfg.MonthlyCapacity, ShouldEqual, 21000)
					So(cfg.Partners, ShouldResemble, []string{"RJ", "CB", "MB", "TJ"})
				})
			})
		})
	})

	Convey("Given an invalid override", t, func() {
		_ = os.Setenv("PULSE_CACHE_TTL_SECONDS", "-5")
		defer func() { _ = os.Unsetenv("PULSE_CACHE_TTL_SECONDS") }()

		Convey("When the config is loaded", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation rejects it with the sentinel kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing config file path", t, func() {
		_ = os.Setenv("PULSE_CONFIG", "/nonexistent/pulse.yaml")
		defer func() { _ = os.Unsetenv("PULSE_CONFIG") }()

		Convey("When the config is loaded", func() {
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}
