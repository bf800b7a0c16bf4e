// Package configs manages user settings and the session configuration.
//
// # User Settings
//
// UserEnvvaultSettings is initialized at startup with:
//   - UserConfigsPath: <UserConfigDir>/envvault (session config, audit log)
//   - UserDataPath: $XDG_DATA_HOME/envvault or ~/.local/share/envvault
//     (variable store, key file)
//   - Username: the current OS account, used to bind protection keys
//
// # Session Configuration
//
// The session is stored in TOML at <UserConfigsPath>/config.toml:
//
//	[user]
//	user_uuid = "..."
//
//	[prefixes]
//	env = "MYAPP_"
//	file = "MYAPP_"
//
//	[settings]
//	config_path = "setting.config"
//
//	[store]
//	backend = "file"   # or "sqlite"
//
//	[keys]
//	source = "keyring" # or "file"
//
// A missing file yields DefaultSession. The loaded Session is passed to
// commands explicitly; nothing in this package holds a "current prefix".
package configs
