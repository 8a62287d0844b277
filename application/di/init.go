/*
 * © 2026 Snyk Limited
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

package di

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
	"github.com/snyk/findings-engine/application/server"
	"github.com/snyk/findings-engine/application/services"
	"github.com/snyk/findings-engine/domain/knowledge"
	er "github.com/snyk/findings-engine/domain/observability/error_reporting"
	"github.com/snyk/findings-engine/domain/observability/performance"
	"github.com/snyk/findings-engine/domain/report"
	"github.com/snyk/findings-engine/infrastructure/access"
	"github.com/snyk/findings-engine/infrastructure/advisories"
	"github.com/snyk/findings-engine/infrastructure/database"
	"github.com/snyk/findings-engine/infrastructure/packages"
	"github.com/snyk/findings-engine/infrastructure/results"
	"github.com/snyk/findings-engine/infrastructure/sentry"
)

var pool *pgxpool.Pool
var errorReporter er.ErrorReporter
var instrumentor performance.Instrumentor
var resultStore results.Store
var packageRepository packages.Repository
var advisoryStore *advisories.Store
var weaknessSource knowledge.WeaknessSource
var accessChecker access.Checker
var lookup *knowledge.Lookup
var assembler *report.Assembler
var htmlRenderer *report.HtmlRenderer
var findingsService *services.FindingsService
var initMutex = &sync.Mutex{}

func Init(ctx context.Context) error {
	initMutex.Lock()
	defer initMutex.Unlock()
	c := config.CurrentConfig()
	if err := initInfrastructure(ctx, c); err != nil {
		return err
	}
	if err := initDomain(c); err != nil {
		return err
	}
	initApplication(c)
	return nil
}

func initInfrastructure(ctx context.Context, c *config.Config) error {
	errorReporter = sentry.NewSentryErrorReporter(c)
	instrumentor = sentry.NewInstrumentor(c)

	var err error
	pool, err = database.Open(ctx, c)
	if err != nil {
		return err
	}
	var payloads results.PayloadStore
	if c.ObjectStore().Enabled() {
		payloads, err = results.NewMinioPayloadStore(c)
		if err != nil {
			return errors.Wrap(err, "couldn't set up payload store")
		}
	}
	if err = initStores(c, pool, payloads); err != nil {
		pool.Close()
		pool = nil
		return err
	}
	return nil
}

func initStores(c *config.Config, db database.Querier, payloads results.PayloadStore) error {
	resultStore = results.NewCachedStore(c, results.NewPostgresStore(c, db, payloads))
	packageRepository = packages.NewRepository(c, db)
	advisoryStore = advisories.NewStore(c, db)
	weaknessSource = advisoryStore
	accessChecker = access.NewPostgresChecker(c, db)
	if path := c.WeaknessCatalogPath(); path != "" {
		catalog := advisories.NewCatalog(c, path, advisoryStore)
		if err := catalog.Load(); err != nil {
			return err
		}
		weaknessSource = catalog
	}
	return nil
}

func initDomain(c *config.Config) error {
	lookup = knowledge.NewLookup(c, weaknessSource, knowledge.NewOWASPTop10_2021())
	assembler = report.NewAssembler(c, lookup, advisoryStore, packageRepository)
	var err error
	htmlRenderer, err = report.NewHtmlRenderer(c)
	return err
}

func initApplication(c *config.Config) {
	findingsService = services.NewFindingsService(c, accessChecker, resultStore, packageRepository, advisoryStore,
		lookup, assembler, htmlRenderer, instrumentor)
}

// Close releases the database pool.
func Close() {
	initMutex.Lock()
	defer initMutex.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}

// HealthCheck pings the database. It reports healthy when no pool is open, as in tests.
func HealthCheck(ctx context.Context) error {
	initMutex.Lock()
	p := pool
	initMutex.Unlock()
	if p == nil {
		return nil
	}
	return database.Ping(ctx, p)
}

// NewHTTPServer wires the JSON-RPC handlers of the findings service.
func NewHTTPServer(c *config.Config) *server.HTTPServer {
	initMutex.Lock()
	defer initMutex.Unlock()
	return server.NewHTTPServer(c, server.NewHandlers(c, findingsService, errorReporter), HealthCheck)
}

func ErrorReporter() er.ErrorReporter {
	initMutex.Lock()
	defer initMutex.Unlock()
	return errorReporter
}

func Instrumentor() performance.Instrumentor {
	initMutex.Lock()
	defer initMutex.Unlock()
	return instrumentor
}

func FindingsService() *services.FindingsService {
	initMutex.Lock()
	defer initMutex.Unlock()
	return findingsService
}

func Pool() *pgxpool.Pool {
	initMutex.Lock()
	defer initMutex.Unlock()
	return pool
}
