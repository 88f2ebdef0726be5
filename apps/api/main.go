package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	echoapi "github.com/jnanasetu/platform/apps/api/echo"
	"github.com/jnanasetu/platform/core"
	"github.com/jnanasetu/platform/core/assessment"
	"github.com/jnanasetu/platform/core/roadmap"
	"github.com/jnanasetu/platform/core/user"
	emailsvc "github.com/jnanasetu/platform/services/email"
	logsvc "github.com/jnanasetu/platform/services/logger"
	"github.com/jnanasetu/platform/services/questions"
	"github.com/jnanasetu/platform/storage/database"
	pgrepos "github.com/jnanasetu/platform/storage/database/postgres"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(pgrepos.NewUserRepository(db), mailSvc, conf)
	assessmentSvc := assessment.NewService(pgrepos.NewAssessmentRepository(db))
	roadmapSvc := roadmap.NewService(pgrepos.NewRoadmapRepository(db))
	questionGen := setUpQuestionGenerator(conf, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		conf.ServerAddress(),
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			AssessmentSvc: assessmentSvc,
			RoadmapSvc:    roadmapSvc,
			QuestionGen:   questionGen,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.ServerAddress()))
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// setUpQuestionGenerator builds the generation chain: a model-backed
// generator, cached in redis when available, with the static bank as the
// fallback of last resort.
func setUpQuestionGenerator(conf *core.Config, logger core.Logger) questions.Generator {
	var gen questions.Generator = questions.NewHTTPGenerator(conf)

	if conf.RedisURL != "" {
		opt, err := redis.ParseURL(conf.RedisURL)
		if err != nil {
			logger.Error(fmt.Sprintf("parsing REDIS_URL, skipping cache: %v", err), err)
		} else {
			gen = questions.WithCache(gen, redis.NewClient(opt), conf, logger)
		}
	}
	return questions.WithFallback(gen, questions.NewStaticGenerator(), logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
