package postgres

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	ips []net.IP
	err error
}

func (r staticResolver) LookupIP(context.Context, string, string) ([]net.IP, error) {
	return r.ips, r.err
}

func TestLookupIPv4(t *testing.T) {
	ctx := context.Background()

	ip, err := lookupIPv4(ctx, staticResolver{}, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip, "literal IPv4 se devuelve tal cual")

	_, err = lookupIPv4(ctx, staticResolver{}, "::1")
	assert.ErrorIs(t, err, errNoIPv4)

	ip, err = lookupIPv4(ctx, staticResolver{ips: []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.168.1.20")}}, "db.local")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20", ip)

	_, err = lookupIPv4(ctx, staticResolver{ips: []net.IP{net.ParseIP("2001:db8::1")}}, "db.local")
	assert.ErrorIs(t, err, errNoIPv4)

	boom := errors.New("dns caído")
	_, err = lookupIPv4(ctx, staticResolver{err: boom}, "db.local")
	assert.ErrorIs(t, err, boom)
}
