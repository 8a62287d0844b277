/*
 * © 2026 Snyk Limited All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package packages

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/findings-engine/internal/testutil"
	"github.com/snyk/findings-engine/internal/types"
)

const lodash = `{"name":"lodash","ecosystem":"npm","latest_version":"4.17.21",
"versions":{"4.17.15":{"version":"4.17.15","licenses":["MIT"]},"4.17.21":{"version":"4.17.21"}}}`

const chalk = `{"name":"chalk","ecosystem":"npm","latest_version":"5.3.0"}`

func expectPackage(db pgxmock.PgxPoolIface, name, record string) {
	db.ExpectQuery("WHERE name = $1").WithArgs(name).
		WillReturnRows(pgxmock.NewRows([]string{"record"}).AddRow([]byte(record)))
}

func TestRepository_Package_IsCached(t *testing.T) {
	c := testutil.UnitTest(t)
	db := testutil.NewMockPool(t)
	expectPackage(db, "lodash", lodash)
	repo := NewRepository(c, db)

	first, err := repo.Package(context.Background(), "lodash")
	require.NoError(t, err)
	second, err := repo.Package(context.Background(), "lodash")
	require.NoError(t, err)

	assert.Equal(t, "4.17.21", first.LatestVersion)
	assert.Equal(t, first, second)
}

func TestRepository_Package_NotFound(t *testing.T) {
	c := testutil.UnitTest(t)
	db := testutil.NewMockPool(t)
	db.ExpectQuery("WHERE name = $1").WithArgs("left-pad").WillReturnError(pgx.ErrNoRows)

	_, err := NewRepository(c, db).Package(context.Background(), "left-pad")

	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestRepository_Metadata(t *testing.T) {
	c := testutil.UnitTest(t)
	db := testutil.NewMockPool(t)
	expectPackage(db, "lodash", lodash)
	repo := NewRepository(c, db)

	v, err := repo.Metadata(context.Background(), "lodash", "4.17.15")
	require.NoError(t, err)
	assert.Equal(t, []string{"MIT"}, v.Licenses)

	_, err = repo.Metadata(context.Background(), "lodash", "1.0.0")
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestRepository_Packages(t *testing.T) {
	c := testutil.UnitTest(t)
	db := testutil.NewMockPool(t)
	expectPackage(db, "lodash", lodash)
	db.ExpectQuery("name = ANY($1)").WithArgs([]string{"broken", "chalk"}).
		WillReturnRows(pgxmock.NewRows([]string{"name", "record"}).
			AddRow("chalk", []byte(chalk)).
			AddRow("broken", []byte("{")))
	repo := NewRepository(c, db)
	_, err := repo.Package(context.Background(), "lodash")
	require.NoError(t, err)

	records, err := repo.Packages(context.Background(), []string{"lodash", "chalk", "broken", "chalk"})

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "5.3.0", records["chalk"].LatestVersion)
}

func TestRepository_Packages_AllCached(t *testing.T) {
	c := testutil.UnitTest(t)
	db := testutil.NewMockPool(t)
	expectPackage(db, "lodash", lodash)
	repo := NewRepository(c, db)
	_, err := repo.Package(context.Background(), "lodash")
	require.NoError(t, err)

	records, err := repo.Packages(context.Background(), []string{"lodash"})

	require.NoError(t, err)
	assert.Contains(t, records, "lodash")
}
