// Package service glues repositories into the stores consumed by the selector and the bot runner.
package service
