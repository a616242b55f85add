package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (local; default), TEST, QA, PROD
	Build    string

	AppName          string
	SecretKey        string
	MasterEmail      string // always granted full admin access
	DefaultFromEmail string
	FrontendBaseURL  string
	WorkDir          string
	SessionFile      string
	MediaRoot        string
	SendgridApiKey   string
	RollbarToken     string

	Server struct {
		Host                      string
		Addr                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Store struct {
		// Latency is applied to every repository operation to mimic a
		// remote backend. Zero disables it.
		Latency time.Duration
	}

	Media struct {
		TickInterval time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Darasa")
	v.SetDefault("secretKey", "z#1yh-g$)q8e(mw&+5u^0_mdb%iu+t*4=p7!jxe9@wov26hs-f")
	v.SetDefault("masterEmail", "prof@darasa.dev")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugHost", "localhost:4000")
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("storeLatency", time.Duration(0))
	v.SetDefault("uploadTickInterval", 300*time.Millisecond)

	wd := Getwd()
	v.SetDefault("workDir", wd)
	v.SetDefault("sessionFile", filepath.Join(wd, ".session.json"))
	v.SetDefault("mediaRoot", filepath.Join(wd, "media"))

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		Env:      env,
		Build:    v.GetString("build"),

		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		MasterEmail:      v.GetString("masterEmail"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		WorkDir:          v.GetString("workDir"),
		SessionFile:      v.GetString("sessionFile"),
		MediaRoot:        v.GetString("mediaRoot"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugHost = v.GetString("serverDebugHost")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")
	conf.Store.Latency = v.GetDuration("storeLatency")
	conf.Media.TickInterval = v.GetDuration("uploadTickInterval")

	conf.check()
	return conf
}

func (conf *Config) check() {
	vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.AppName, "appName"),
		vala.StringNotEmpty(conf.SecretKey, "secretKey"),
		vala.StringNotEmpty(conf.MasterEmail, "masterEmail"),
		vala.StringNotEmpty(conf.SessionFile, "sessionFile"),
		vala.StringNotEmpty(conf.MediaRoot, "mediaRoot"),
	).CheckAndPanic()
}
