// Package config loads the server's runtime settings.
//
// The config package implements:
//   - Built-in defaults (Default)
//   - Optional JSON config file loading (Load)
//   - Environment variable overrides applied after the file
//   - Validation with ErrInvalidConfig
//
// Resolution Order:
//
// Defaults, then the JSON file if a path is given and exists, then the
// environment:
//   - BINGO_DEFAULT_ROOM
//   - BINGO_TICKET_MAX_ATTEMPTS
//   - BINGO_ALLOWED_ORIGINS (comma-separated)
//
// An absent file and absent variables fall back to defaults, so a bare
// `bingoserver` invocation always works.
//
// Usage:
//
//	cfg, err := config.Load("config.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(cfg.DefaultRoom)
package config
