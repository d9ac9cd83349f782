package main

import (
	"context"
	"log/slog"
	"time"

	authadapters "voltid/internal/auth/adapters"
	authmetrics "voltid/internal/auth/metrics"
	authservice "voltid/internal/auth/service"
	userstore "voltid/internal/auth/store/user"
	"voltid/internal/housekeeping"
	jwttoken "voltid/internal/jwt_token"
	kycmetrics "voltid/internal/kyc/metrics"
	kycservice "voltid/internal/kyc/service"
	kycstore "voltid/internal/kyc/store"
	"voltid/internal/notification"
	paymentmetrics "voltid/internal/payment/metrics"
	paymentservice "voltid/internal/payment/service"
	paymentstore "voltid/internal/payment/store"
	"voltid/internal/platform/config"
	rlmetrics "voltid/internal/ratelimit/metrics"
	rlservice "voltid/internal/ratelimit/service"
	"voltid/internal/ratelimit/store/counter"
	tenantmetrics "voltid/internal/tenant/metrics"
	tenantservice "voltid/internal/tenant/service"
	tenantstore "voltid/internal/tenant/store/tenant"
	vmetrics "voltid/internal/verification/metrics"
	vservice "voltid/internal/verification/service"
	vstore "voltid/internal/verification/store"
	id "voltid/pkg/domain"
	audit "voltid/pkg/platform/audit"
	auditpublisher "voltid/pkg/platform/audit/publisher"
	auditmemory "voltid/pkg/platform/audit/store/memory"
	auditpostgres "voltid/pkg/platform/audit/store/postgres"
	"voltid/pkg/platform/audit/worker"
)

const (
	appName = "VoltID"

	// authRequestsPerMinute caps unauthenticated auth calls per client IP.
	authRequestsPerMinute = 60
)

type userStore interface {
	authservice.UserStore
	CountByTenant(ctx context.Context, tenantID id.TenantID) (int, error)
}

type verificationStore interface {
	vservice.Store
	authservice.VerificationStore
}

type auditStore interface {
	audit.Store
	worker.OutboxStore
	housekeeping.OutboxCleaner
}

type stores struct {
	users         userStore
	verifications verificationStore
	kyc           kycservice.Store
	payments      paymentservice.Store
	tenants       tenantservice.TenantStore
	audit         auditStore
}

func newStores(in *infra) stores {
	if in.db == nil {
		return stores{
			users:         userstore.New(),
			verifications: vstore.NewInMemory(),
			kyc:           kycstore.NewInMemory(),
			payments:      paymentstore.NewInMemory(),
			tenants:       tenantstore.NewInMemory(),
			audit:         auditmemory.NewInMemoryStore(),
		}
	}
	return stores{
		users:         userstore.NewPostgres(in.db),
		verifications: vstore.NewPostgres(in.db),
		kyc:           kycstore.NewPostgres(in.db),
		payments:      paymentstore.NewPostgres(in.db),
		tenants:       tenantstore.NewPostgres(in.db),
		audit:         auditpostgres.New(in.db),
	}
}

// app is the wired service graph behind the router.
type app struct {
	auth    *authservice.Service
	kyc     *kycservice.Service
	payment *paymentservice.Service
	tenant  *tenantservice.Service
	tokens  *jwttoken.JWTServiceAdapter
	byIP    *rlservice.Limiter
	sweeper *housekeeping.Sweeper
	relay   *worker.Worker
}

func buildApp(cfg config.Config, in *infra, log *slog.Logger) *app {
	st := newStores(in)
	auditor := auditpublisher.New(st.audit, auditpublisher.WithLogger(log))
	reg := in.registry

	tenants := tenantservice.New(st.tenants, st.users,
		tenantservice.WithTx(in.runner),
		tenantservice.WithAuditPublisher(auditor),
		tenantservice.WithMetrics(tenantmetrics.New(reg)),
		tenantservice.WithLogger(log),
	)

	verifications := vservice.New(st.verifications, in.otpRunner, cfg.OTP.Salt,
		vservice.WithLogger(log),
		vservice.WithMetrics(vmetrics.New(reg)),
	)

	kyc := kycservice.New(st.kyc, st.users, in.objects, in.vision, in.vision, in.runner,
		kycservice.WithLogger(log),
		kycservice.WithMetrics(kycmetrics.New(reg)),
		kycservice.WithAuditPublisher(auditor),
	)

	tokens := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, "voltid-api"),
		cfg.Auth.AccessTokenTTL,
	)

	var counters rlservice.CounterStore = counter.NewInMemory()
	if in.redis != nil {
		counters = counter.NewRedis(in.redis.Client, "voltid")
	}
	limiterMetrics := rlmetrics.New(reg)
	newLimiter := func(name string, limit int, window time.Duration) *rlservice.Limiter {
		return rlservice.New(counters, rlservice.Policy{Name: name, Limit: limit, Window: window},
			rlservice.WithLogger(log),
			rlservice.WithMetrics(limiterMetrics),
		)
	}

	auth := authservice.New(st.users, st.verifications, verifications, in.otpRunner, tokens,
		authservice.WithLogger(log),
		authservice.WithMetrics(authmetrics.New(reg)),
		authservice.WithNotifier(notification.NewNotifier(in.sms, in.email, appName, log)),
		authservice.WithResendLimiter(newLimiter("otp_resend", cfg.OTP.ResendLimit, cfg.OTP.ResendWindow)),
		authservice.WithLoginLimiter(newLimiter("login", cfg.Auth.LoginAttemptLimit, cfg.Auth.LoginAttemptWindow)),
		authservice.WithKYC(kyc),
		authservice.WithTenants(authadapters.NewTenantChecker(tenants)),
		authservice.WithAuditPublisher(auditor),
	)

	payment := paymentservice.New(st.payments, kyc, in.runner,
		paymentservice.WithLogger(log),
		paymentservice.WithMetrics(paymentmetrics.New(reg)),
		paymentservice.WithAuditPublisher(auditor),
	)

	sweeper := housekeeping.New(verifications,
		housekeeping.WithOutbox(st.audit),
		housekeeping.WithRetention(cfg.Housekeeping.Retention),
		housekeeping.WithLogger(log),
	)

	var relay *worker.Worker
	if in.producer != nil {
		relay = worker.NewWorker(st.audit, in.producer, in.runner,
			worker.WithInterval(cfg.Audit.PollInterval),
			worker.WithBatchSize(cfg.Audit.BatchSize),
			worker.WithLogger(log),
		)
	}

	return &app{
		auth:    auth,
		kyc:     kyc,
		payment: payment,
		tenant:  tenants,
		tokens:  tokens,
		byIP:    newLimiter("auth_ip", authRequestsPerMinute, time.Minute),
		sweeper: sweeper,
		relay:   relay,
	}
}
