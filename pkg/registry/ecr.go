// Package registry resolves credentials for the production image registry.
package registry

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

// Credentials is a resolved username/password pair for a registry host.
type Credentials struct {
	Username string
	Password string
	Expires  time.Time
}

// ecrAPI is the subset of the ECR client used by the provider.
type ecrAPI interface {
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
}

// ECRProvider resolves docker login credentials for an ECR registry host,
// caching the token until close to expiry.
type ECRProvider struct {
	region string

	mu    sync.Mutex
	cache map[string]Credentials // host -> credentials

	// newClient is overridable for tests.
	newClient func(ctx context.Context, region string) (ecrAPI, error)
}

// NewECRProvider creates a provider. region may be empty, in which case it is
// derived from the registry host (<account>.dkr.ecr.<region>.amazonaws.com).
func NewECRProvider(region string) *ECRProvider {
	return &ECRProvider{
		region:    region,
		cache:     make(map[string]Credentials),
		newClient: newECRClient,
	}
}

// IsECRHost reports whether host looks like an ECR registry endpoint.
func IsECRHost(host string) bool {
	return strings.Contains(host, ".dkr.ecr.") && strings.HasSuffix(host, ".amazonaws.com")
}

// Resolve returns login credentials for the given registry host.
func (p *ECRProvider) Resolve(ctx context.Context, host string) (Credentials, error) {
	p.mu.Lock()
	if creds, ok := p.cache[host]; ok && time.Until(creds.Expires) > 5*time.Minute {
		p.mu.Unlock()
		return creds, nil
	}
	p.mu.Unlock()

	creds, err := p.fetch(ctx, host)
	if err != nil {
		return Credentials{}, err
	}

	p.mu.Lock()
	p.cache[host] = creds
	p.mu.Unlock()
	return creds, nil
}

func (p *ECRProvider) fetch(ctx context.Context, host string) (Credentials, error) {
	region := p.region
	if region == "" {
		region = regionFromHost(host)
	}
	if region == "" {
		return Credentials{}, fmt.Errorf("ecr: no region for host %s", host)
	}

	cli, err := p.newClient(ctx, region)
	if err != nil {
		return Credentials{}, err
	}

	out, err := cli.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return Credentials{}, fmt.Errorf("ecr: failed to get authorization token: %w", err)
	}
	if len(out.AuthorizationData) == 0 {
		return Credentials{}, fmt.Errorf("ecr: empty auth data")
	}

	var chosen ecrtypes.AuthorizationData
	for _, ad := range out.AuthorizationData {
		if ad.ProxyEndpoint != nil && strings.Contains(*ad.ProxyEndpoint, host) {
			chosen = ad
			break
		}
	}
	if chosen.AuthorizationToken == nil {
		chosen = out.AuthorizationData[0]
	}

	tok, err := base64.StdEncoding.DecodeString(*chosen.AuthorizationToken)
	if err != nil {
		return Credentials{}, fmt.Errorf("ecr: invalid authorization token encoding: %w", err)
	}
	parts := strings.SplitN(string(tok), ":", 2)
	if len(parts) != 2 {
		return Credentials{}, fmt.Errorf("ecr: invalid token format")
	}

	exp := time.Now().Add(12 * time.Hour)
	if chosen.ExpiresAt != nil {
		exp = *chosen.ExpiresAt
	}
	return Credentials{Username: parts[0], Password: parts[1], Expires: exp}, nil
}

// regionFromHost extracts the region from an ECR host name.
func regionFromHost(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) >= 6 {
		return parts[3]
	}
	return ""
}

func newECRClient(ctx context.Context, region string) (ecrAPI, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return ecr.NewFromConfig(cfg), nil
}
