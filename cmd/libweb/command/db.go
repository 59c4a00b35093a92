// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

const credsRenewalMessage = `
For a postgres database, the admin role password is read from the
.pgpass file in the pass-dir directory. Thereafter, the libweb role is
created (if it is missing) and both roles get fresh random passwords.
New passwords are written in the .pgpass.new file before updating the
database and that file replaces the .pgpass file after the commit.
A sqlite database has no roles and only its tables are created.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For installation in a development or production environment, the
init-dev or init-prod may be used respectively. Both actions keep
the existing tables and rows, so they may be repeated.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
