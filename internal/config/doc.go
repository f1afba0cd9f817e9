// Package config loads settings for the class-schedule CLI from defaults, a .env file,
// CLASS_SCHEDULE_* environment variables and an optional config file.
package config
