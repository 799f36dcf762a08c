package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Init configures the process logger. Production logs JSON, everything else
// stays human-readable text.
func Init(environment string) {
	log.SetOutput(os.Stdout)

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Info(msg)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Warn(msg)
}

func Error(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Error(msg)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Fatal(msg)
}

// fields pairs up variadic key/value arguments. A bare error (or any odd
// trailing value) lands under the "error" key so call sites can pass the
// error directly after the message.
func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}

	i := 0
	for i < len(keysAndValues) {
		if key, ok := keysAndValues[i].(string); ok && i+1 < len(keysAndValues) {
			f[key] = keysAndValues[i+1]
			i += 2
			continue
		}
		f["error"] = keysAndValues[i]
		i++
	}

	return f
}
