package gws

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/gwsync/internal/membership"
)

const (
	baseURLRequiredMessageConstant              = "service base URL must be provided"
	caCertificateRequiredMessageConstant        = "trust-root certificate path must be provided"
	clientCertificateRequiredMessageConstant    = "client certificate path must be provided"
	clientKeyRequiredMessageConstant            = "client key path must be provided"
	httpClientNotConfiguredMessageConstant      = "http client not configured"
	remoteGroupNameRequiredMessageConstant      = "remote group name must be provided"
	clientKeyPairLoadErrorTemplateConstant      = "failed to load client certificate pair: %w"
	caCertificateReadErrorTemplateConstant      = "failed to read trust-root certificate: %w"
	caCertificateParseFailedMessageConstant     = "trust-root certificate contains no usable certificates"
	membershipRequestBuildErrorTemplateConstant = "failed to build membership request for group %q: %w"
	membershipRequestErrorTemplateConstant      = "failed to fetch members of group %q: %w"
	membershipStatusErrorTemplateConstant       = "membership request for group %q returned status %s"
	membershipDecodeErrorTemplateConstant       = "failed to decode membership response for group %q: %w"
	groupMemberEndpointTemplateConstant         = "%s/group/%s/member"
	personalMemberTypeConstant                  = "uwnetid"
	acceptHeaderNameConstant                    = "Accept"
	acceptHeaderValueConstant                   = "application/json"
	remoteGroupFieldNameConstant                = "remote_group"
	remoteMemberCountFieldNameConstant          = "remote_member_count"
	excludedEntryCountFieldNameConstant         = "excluded_entry_count"
	membershipFetchCompletedMessageConstant     = "remote group membership fetched"
	requestTimeoutConstant                      = 30 * time.Second
)

// ErrBaseURLRequired indicates the client options omitted the service base URL.
var ErrBaseURLRequired = errors.New(baseURLRequiredMessageConstant)

// ErrCACertificateRequired indicates the client options omitted the trust-root certificate path.
var ErrCACertificateRequired = errors.New(caCertificateRequiredMessageConstant)

// ErrClientCertificateRequired indicates the client options omitted the client certificate path.
var ErrClientCertificateRequired = errors.New(clientCertificateRequiredMessageConstant)

// ErrClientKeyRequired indicates the client options omitted the client key path.
var ErrClientKeyRequired = errors.New(clientKeyRequiredMessageConstant)

// ErrHTTPClientNotConfigured indicates the client was constructed without an HTTP doer.
var ErrHTTPClientNotConfigured = errors.New(httpClientNotConfiguredMessageConstant)

// ErrRemoteGroupNameRequired indicates a membership fetch was requested without a group name.
var ErrRemoteGroupNameRequired = errors.New(remoteGroupNameRequiredMessageConstant)

// ClientOptions carries the endpoint and mutual-TLS material for the Groups Web Service.
type ClientOptions struct {
	BaseURL               string
	CACertificatePath     string
	ClientCertificatePath string
	ClientKeyPath         string
}

// HTTPDoer is the minimal interface required from net/http.Client.
type HTTPDoer interface {
	Do(request *http.Request) (*http.Response, error)
}

// Client fetches remote group membership from the Groups Web Service.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *zap.Logger
}

type membershipEntry struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type membershipDocument struct {
	Data []membershipEntry `json:"data"`
}

// NewClient validates the supplied options, assembles a mutual-TLS HTTP client
// with a fixed request timeout, and returns a ready Client.
func NewClient(options ClientOptions, logger *zap.Logger) (*Client, error) {
	trimmedBaseURL := strings.TrimRight(strings.TrimSpace(options.BaseURL), "/")
	if len(trimmedBaseURL) == 0 {
		return nil, ErrBaseURLRequired
	}
	trimmedCACertificatePath := strings.TrimSpace(options.CACertificatePath)
	if len(trimmedCACertificatePath) == 0 {
		return nil, ErrCACertificateRequired
	}
	trimmedClientCertificatePath := strings.TrimSpace(options.ClientCertificatePath)
	if len(trimmedClientCertificatePath) == 0 {
		return nil, ErrClientCertificateRequired
	}
	trimmedClientKeyPath := strings.TrimSpace(options.ClientKeyPath)
	if len(trimmedClientKeyPath) == 0 {
		return nil, ErrClientKeyRequired
	}

	clientKeyPair, keyPairLoadError := tls.LoadX509KeyPair(trimmedClientCertificatePath, trimmedClientKeyPath)
	if keyPairLoadError != nil {
		return nil, fmt.Errorf(clientKeyPairLoadErrorTemplateConstant, keyPairLoadError)
	}

	caCertificateData, caCertificateReadError := os.ReadFile(trimmedCACertificatePath)
	if caCertificateReadError != nil {
		return nil, fmt.Errorf(caCertificateReadErrorTemplateConstant, caCertificateReadError)
	}

	certificatePool := x509.NewCertPool()
	if !certificatePool.AppendCertsFromPEM(caCertificateData) {
		return nil, errors.New(caCertificateParseFailedMessageConstant)
	}

	httpTransport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:      certificatePool,
			Certificates: []tls.Certificate{clientKeyPair},
			MinVersion:   tls.VersionTLS12,
		},
	}

	httpClient := &http.Client{
		Transport: httpTransport,
		Timeout:   requestTimeoutConstant,
	}

	return newClient(trimmedBaseURL, httpClient, logger)
}

// NewClientWithHTTPDoer constructs a Client around an existing HTTP doer. It
// exists so tests can substitute transport behavior without TLS material.
func NewClientWithHTTPDoer(baseURL string, httpClient HTTPDoer, logger *zap.Logger) (*Client, error) {
	trimmedBaseURL := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if len(trimmedBaseURL) == 0 {
		return nil, ErrBaseURLRequired
	}
	return newClient(trimmedBaseURL, httpClient, logger)
}

func newClient(baseURL string, httpClient HTTPDoer, logger *zap.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, ErrHTTPClientNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, logger: logger}, nil
}

// ListGroupMembers fetches the membership of the named remote group and
// returns the personal member identifiers as a set. Entries whose type is not
// the personal identifier type, or whose identifier falls outside the personal
// namespace, are excluded.
func (client *Client) ListGroupMembers(executionContext context.Context, remoteGroupName string) (membership.MemberSet, error) {
	trimmedGroupName := strings.TrimSpace(remoteGroupName)
	if len(trimmedGroupName) == 0 {
		return nil, ErrRemoteGroupNameRequired
	}

	membershipURL := fmt.Sprintf(groupMemberEndpointTemplateConstant, client.baseURL, url.PathEscape(trimmedGroupName))
	membershipRequest, requestBuildError := http.NewRequestWithContext(executionContext, http.MethodGet, membershipURL, nil)
	if requestBuildError != nil {
		return nil, fmt.Errorf(membershipRequestBuildErrorTemplateConstant, trimmedGroupName, requestBuildError)
	}
	membershipRequest.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)

	membershipResponse, requestError := client.httpClient.Do(membershipRequest)
	if requestError != nil {
		return nil, fmt.Errorf(membershipRequestErrorTemplateConstant, trimmedGroupName, requestError)
	}
	defer membershipResponse.Body.Close()

	if membershipResponse.StatusCode < http.StatusOK || membershipResponse.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(membershipStatusErrorTemplateConstant, trimmedGroupName, membershipResponse.Status)
	}

	var document membershipDocument
	if decodeError := json.NewDecoder(membershipResponse.Body).Decode(&document); decodeError != nil {
		return nil, fmt.Errorf(membershipDecodeErrorTemplateConstant, trimmedGroupName, decodeError)
	}

	remoteMembers := membership.NewMemberSet()
	excludedEntryCount := 0
	for _, entry := range document.Data {
		if entry.Type != personalMemberTypeConstant || !membership.IsPersonalIdentifier(entry.ID) {
			excludedEntryCount++
			continue
		}
		remoteMembers.Add(entry.ID)
	}

	client.logger.Debug(
		membershipFetchCompletedMessageConstant,
		zap.String(remoteGroupFieldNameConstant, trimmedGroupName),
		zap.Int(remoteMemberCountFieldNameConstant, remoteMembers.Size()),
		zap.Int(excludedEntryCountFieldNameConstant, excludedEntryCount),
	)

	return remoteMembers, nil
}
