// Package auth provides user accounts, session login and request
// authentication.
//
// Users are created from the command line (jianjin create-user) and log in
// through /accounts/login/. Sessions are stored by scs in the application
// database with the sqlite3store or postgresstore backend, matching
// DATABASE_DRIVER.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # CSRF key, generated per process if empty
//	AUTH_SESSION_LIFETIME=336h          # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//
// # Usage
//
//	svc := auth.NewService(db, cfg.Auth)
//	sm, err := auth.NewSessionManager(sqlDB, cfg.Database.Driver, cfg.Auth)
//	router.Use(sm.SessionLoadSave())
//	router.Use(auth.NewMiddleware(svc, sm).Handler())
//
// Extract the user in handlers:
//
//	userID := auth.GetUserID(c)
//
// Unauthenticated requests under /words/ or asking for JSON get 403; other
// requests are redirected to the login page with a next parameter.
package auth
