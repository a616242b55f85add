package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/comment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/session"
	emailsvc "github.com/trezcool/darasa/services/email"
	mediasvc "github.com/trezcool/darasa/services/media"
	inmemdb "github.com/trezcool/darasa/storage/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	conf *core.Config
	app  echoapi.Server

	acctRepo    account.Repository
	commentRepo comment.Repository

	acctSvc   account.Service
	courseSvc course.Service
}

func setup(t *testing.T) *testApp {
	conf := testutil.NewTestConfig(t)

	db, err := inmemdb.Open(0)
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	acctRepo := inmemdb.NewAccountRepository(db)
	courseRepo := inmemdb.NewCourseRepository(db)
	commentRepo := inmemdb.NewCommentRepository(db)

	sessions := session.NewManager(conf.SessionFile)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	acctSvc := account.NewService(acctRepo, sessions, mailSvc, conf)
	courseSvc := course.NewService(courseRepo, commentRepo)
	commentSvc := comment.NewService(commentRepo)
	mediaSvc := mediasvc.NewService(conf, testutil.NopLogger{})

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)

	app := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     testutil.NopLogger{},
			AccountSvc: acctSvc,
			CourseSvc:  courseSvc,
			CommentSvc: commentSvc,
			MediaSvc:   mediaSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	return &testApp{
		conf:        conf,
		app:         app,
		acctRepo:    acctRepo,
		commentRepo: commentRepo,
		acctSvc:     acctSvc,
		courseSvc:   courseSvc,
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
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

func getToken(t *testing.T, conf *core.Config, acct account.Account) string {
	token, err := echoapi.GenerateToken(conf, echoapi.GetAccountClaims(conf, acct))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
