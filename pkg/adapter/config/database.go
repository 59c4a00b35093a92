// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/momeni/libweb/pkg/adapter/config/settings"
	"github.com/momeni/libweb/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/libweb/pkg/adapter/db/postgres"
	"github.com/momeni/libweb/pkg/adapter/db/sqlite"
	"github.com/momeni/libweb/pkg/adapter/hash/scram"
	"github.com/momeni/libweb/pkg/core/log"
	"github.com/momeni/libweb/pkg/core/repo"
	scrami "github.com/momeni/libweb/pkg/core/scram"
)

// Supported values of the Database.Driver setting.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Boundaries and default value of the Database.LockTimeout setting.
const (
	MinLockTimeout     = settings.Duration(100 * time.Millisecond)
	MaxLockTimeout     = settings.Duration(time.Minute)
	DefaultLockTimeout = settings.Duration(5 * time.Second)
)

// ErrNoRoles indicates that a DBMS without login roles (i.e., sqlite)
// was asked to renew the role passwords.
var ErrNoRoles = errors.New("database driver has no login roles")

// Database contains the database related configuration settings.
type Database struct {
	// Driver is either postgres (the default value) or sqlite.
	Driver string `yaml:",omitempty"`

	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like libweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. The parallel test cases need multiple non-colliding
	// roles in the same database cluster.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies how passwords should be hashed and stored
	// in the database, so they may be used by an authentication
	// operation successfully. The scram-sha-1 and scram-sha-256
	// methods are supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// Path is the database file path of the sqlite driver.
	Path string `yaml:",omitempty"`

	// LockTimeout bounds the time which a transaction may wait for
	// a row (postgres) or database (sqlite) lock.
	LockTimeout *settings.Duration `yaml:"lock-timeout,omitempty"`

	hasher scrami.Hasher `yaml:"-"`
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It also fills the default values.
func (d *Database) ValidateAndNormalize() error {
	switch d.Driver {
	case "":
		d.Driver = DriverPostgres
		fallthrough
	case DriverPostgres:
		if d.Host == "" || d.Name == "" || d.PassDir == "" {
			return errors.New("host, name, and pass-dir are required")
		}
		if d.Port <= 0 || d.Port > 65535 {
			return fmt.Errorf("invalid port: %d", d.Port)
		}
	case DriverSQLite:
		if d.Path == "" {
			return errors.New("path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", d.Driver)
	}
	if d.AuthMethod == "" {
		d.AuthMethod = "scram-sha-256"
	}
	h, err := scram.ByName(d.AuthMethod)
	if err != nil {
		return err
	}
	d.hasher = h
	settings.Default(&d.LockTimeout, DefaultLockTimeout)
	minb, maxb := MinLockTimeout, MaxLockTimeout
	if err := settings.VerifyRange(&d.LockTimeout, &minb, &maxb); err != nil {
		log.Warn(
			context.Background(), "lock-timeout is clamped",
			log.Err("reason", err),
			log.Valuer("given", err.Value),
			log.Valuer("used", d.LockTimeout),
		)
	}
	return nil
}

func (d Database) lockTimeout() time.Duration {
	return time.Duration(*d.LockTimeout)
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the d settings.
// The sqlite driver opens the d.Path file and ignores r.
//
// For postgres, initially the .pgpass file in the d.PassDir folder is
// checked which should conform with the pgpass format with lines like:
//
//	host:port:dbname:role:password
//
// If a database connection could be established, created pool and nil
// error will be returned. Otherwise, passwords might have been updated
// during a previous incomplete initialization. So the .pgpass.new file
// in the same d.PassDir folder is checked too. If a connection could be
// established successfully, the .pgpass.new will be moved to the
// .pgpass file, so it may be overwritten safely later.
//
// The d.RoleSuffix will be appended to the given r role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	if d.Driver == DriverSQLite {
		p, err := sqlite.NewPool(ctx, d.Path, d.lockTimeout())
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	log.Warn(
		ctx, "cannot connect, trying the new pass-file",
		slog.String("path", path), slog.String("new-path", newPath),
		log.Err("err", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the postgresql connection URL embedding the
// host, port, role name, database name, password, and lock_timeout
// values. The role name is specified by r (plus the d.RoleSuffix) and
// the password is read from the path file. The path file may contain
// empty or #-commented lines in addition to the pgpass formatted lines.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line for %q", r)
	}
	q := url.Values{}
	q.Set("lock_timeout", fmt.Sprint(d.lockTimeout().Milliseconds()))
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(string(r), pass),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a Schema repository using the hasher which
// was chosen based on the d.AuthMethod by the ValidateAndNormalize.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in a temporary file (i.e., .pgpass.new file
// in the d.PassDir directory), will use the change function in order
// to update the passwords of those roles in the database too.
// The change function should perform the update in a transaction.
// Once it is committed, the returned finalizer moves the temporary
// passwords file over the main .pgpass file, so ConnectionPool can
// find the new passwords. If the commit fails, ConnectionPool still
// finds the old passwords in the .pgpass file.
//
// The d.RoleSuffix is appended to the roles names in the file, so the
// change function must add the same suffix when updating the roles.
func (d Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	if d.Driver == DriverSQLite {
		return nil, ErrNoRoles
	}
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(roles))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		passwords[i] = enc.EncodeToString(b)
		lines[i] = fmt.Sprintf(
			"%s:%s:%s\n", prfx, r+d.RoleSuffix, passwords[i],
		)
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return func() error {
		return os.Rename(newPath, orgPath)
	}, nil
}
