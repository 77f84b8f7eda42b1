// Package config loads certalert settings and credentials.
//
// Settings come from an optional TOML file:
//
//	[settings]
//	file        = "dados.xlsx"
//	sheet       = ""
//	window_days = 7
//
//	[columns]
//	code    = "Código"
//	company = "Empresa"
//	days    = "Dias"
//	expiry  = "Validade"
//
//	[telegram]
//	api_url = "https://api.telegram.org"
//
// The Telegram credentials are never read from the file. They come from the
// TELEGRAM_TOKEN and TELEGRAM_CHAT_ID environment variables, optionally
// seeded from a .env file.
package config
