// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"github.com/spf13/viper"
)

const DefaultStore = "dev/bench/data.js"

func Store() string {
	if s := viper.GetString("STORE"); s != "" {
		return s
	}
	return DefaultStore
}

func RepoURL() string {
	return viper.GetString("REPO_URL")
}

func Schema() string {
	return viper.GetString("SCHEMA")
}

func LockTimeout() int {
	return viper.GetInt("LOCK_TIMEOUT")
}

func BusyTimeout() int { return viper.GetInt("BUSY_TIMEOUT") }

func Verbose() bool {
	return viper.GetBool("VERBOSE")
}
