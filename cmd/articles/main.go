package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alexandruvladut/articles-rest-api/config"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/middleware"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/router/handler"
	"github.com/alexandruvladut/articles-rest-api/internal/infra/auth"
	logs "github.com/alexandruvladut/articles-rest-api/internal/infra/log"
	"github.com/alexandruvladut/articles-rest-api/internal/infra/persistence/postgres"
	"github.com/alexandruvladut/articles-rest-api/internal/infra/seed"
	"github.com/alexandruvladut/articles-rest-api/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedArticles,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewArticleRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			seed.NewSeeder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewArticleService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewArticleHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func seedArticles(ctx context.Context, seeder *seed.Seeder) error {
	return seeder.Run(ctx)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
