package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/jnanasetu/platform/apps/api/echo"
	"github.com/jnanasetu/platform/core"
	"github.com/jnanasetu/platform/core/assessment"
	"github.com/jnanasetu/platform/core/roadmap"
	"github.com/jnanasetu/platform/core/user"
	emailsvc "github.com/jnanasetu/platform/services/email"
	logsvc "github.com/jnanasetu/platform/services/logger"
	"github.com/jnanasetu/platform/services/questions"
	inmemdb "github.com/jnanasetu/platform/storage/database/inmem"
)

var (
	conf *core.Config
	app  *Server

	usrRepo        user.Repository
	assessmentRepo assessment.Repository
	roadmapRepo    roadmap.Repository

	usrSvc *user.Service

	errMissingToken = httpErr{Error: "access token required"}
	errBadToken     = httpErr{Error: "invalid token"}
	errNotFound     = httpErr{Error: "not found"}
)

func newTestConfig() *core.Config {
	return &core.Config{
		Debug:                     false,
		TestMode:                  true,
		Env:                       "TEST",
		Build:                     "test",
		AppName:                   "JnanaSetu",
		SecretKey:                 "8orMX2S6_KGbrO4TLN45BKiFdpBTNkjw",
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		FrontendURL:               "http://localhost:5173",
		DefaultFromEmail:          mail.Address{Name: "JnanaSetu", Address: "noreply@localhost"},
		Server: core.ServerConfig{
			Port:               "8000",
			ShutdownTimeout:    5 * time.Second,
			JWTExpirationDelta: 30 * time.Minute,
			RateLimitWindow:    time.Minute,
			RateLimitCeiling:   100000, // effectively off
		},
	}
}

type testEnv struct {
	app            *Server
	usrRepo        user.Repository
	assessmentRepo assessment.Repository
	roadmapRepo    roadmap.Repository
	usrSvc         *user.Service
}

func newTestEnv(conf *core.Config) *testEnv {
	db := inmemdb.Open()
	env := &testEnv{
		usrRepo:        inmemdb.NewUserRepository(db),
		assessmentRepo: inmemdb.NewAssessmentRepository(db),
		roadmapRepo:    inmemdb.NewRoadmapRepository(db),
	}

	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	env.usrSvc = user.NewService(env.usrRepo, mailSvc, conf)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	core.ParseEmailTemplates(logger)

	env.app = NewServer(conf.ServerAddress(), ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       env.usrSvc,
		AssessmentSvc: assessment.NewService(env.assessmentRepo),
		RoadmapSvc:    roadmap.NewService(env.roadmapRepo),
		QuestionGen:   questions.NewStaticGenerator(),
		Validate:      validate,
		Translator:    translator,
	})
	return env
}

func TestMain(m *testing.M) {
	conf = newTestConfig()

	env := newTestEnv(conf)
	app = env.app
	usrRepo = env.usrRepo
	assessmentRepo = env.assessmentRepo
	roadmapRepo = env.roadmapRepo
	usrSvc = env.usrSvc

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func createUser(t *testing.T, fullName, email, pwd string) user.User {
	t.Helper()
	usr, err := usrSvc.Register(context.Background(), user.NewUser{
		FullName:        fullName,
		Email:           email,
		Password:        pwd,
		ConfirmPassword: pwd,
		TermsAccepted:   true,
	})
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	return usr
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr, conf), conf)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
