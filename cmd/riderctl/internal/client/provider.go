package client

import (
	"sync"

	"github.com/pterm/pterm"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/auth"
	"github.com/plunoo/riderapp/internal/log"
	"github.com/plunoo/riderapp/pkg/sdk"
)

// Provider lazily builds the SDK client and its session manager from the
// on-disk session store. Commands share one provider per invocation, so the
// session is rehydrated at most once.
type Provider struct {
	serverURL string
	options   []sdk.ClientOption

	once    sync.Once
	client  *sdk.Client
	session *sdk.SessionManager
	err     error
}

// NewProvider constructs a Provider bound to the given server URL.
func NewProvider(serverURL string, options ...sdk.ClientOption) *Provider {
	return &Provider{serverURL: serverURL, options: options}
}

// Client returns the shared SDK client, building it on first use.
func (p *Provider) Client() (*sdk.Client, error) {
	p.build()
	return p.client, p.err
}

// Session returns the shared session manager, building it on first use.
func (p *Provider) Session() (*sdk.SessionManager, error) {
	p.build()
	return p.session, p.err
}

// Principal returns the active principal, or nil when logged out or when
// the provider failed to build. The guard treats nil as "go to login".
func (p *Provider) Principal() *sdk.Principal {
	session, err := p.Session()
	if err != nil {
		return nil
	}
	return session.Principal()
}

func (p *Provider) build() {
	p.once.Do(func() {
		store, err := auth.NewFileStore()
		if err != nil {
			p.err = err
			return
		}
		p.session = sdk.NewSessionManager(store)
		p.session.OnSessionInvalidated(func() {
			pterm.Warning.Println("Session expired; please run `riderctl auth login`.")
		})

		options := append([]sdk.ClientOption{
			sdk.WithLogger(log.WithComponent("sdk")),
		}, p.options...)
		p.client = sdk.NewClient(p.serverURL, p.session, options...)
	})
}
