package rdm_test

import (
	"testing"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

func TestNetworkResponderReportsDNSConfigViaGetter(t *testing.T) {
	t.Parallel()

	dns := rdm.StaticDNSConfig{Host: "fixture01", Domain: "lan.example", NameServers: []string{"10.0.0.1", "10.0.0.2"}}
	uid := rdm.NewUID(0x7a70, 5)
	r := rdm.NewNetworkResponder(uid, nil, dns)
	controller := rdm.NewUID(0x746f, 1)

	host := &rdm.RDMRequest{SourceUID: controller, DestinationUID: uid, CommandClass: rdm.CCGetCommand, ParamID: rdm.PIDDNSHostName}
	var hostResp *rdm.RDMResponse
	r.SendRDMRequest(host, func(_ rdm.Status, got *rdm.RDMResponse) { hostResp = got })
	if string(hostResp.ParamData) != "fixture01" {
		t.Errorf("DNS_HOST_NAME = %q, want %q", hostResp.ParamData, "fixture01")
	}

	domain := &rdm.RDMRequest{SourceUID: controller, DestinationUID: uid, CommandClass: rdm.CCGetCommand, ParamID: rdm.PIDDNSDomainName}
	var domainResp *rdm.RDMResponse
	r.SendRDMRequest(domain, func(_ rdm.Status, got *rdm.RDMResponse) { domainResp = got })
	if string(domainResp.ParamData) != "lan.example" {
		t.Errorf("DNS_DOMAIN_NAME = %q, want %q", domainResp.ParamData, "lan.example")
	}

	ns0 := &rdm.RDMRequest{SourceUID: controller, DestinationUID: uid, CommandClass: rdm.CCGetCommand, ParamID: rdm.PIDDNSNameServer, ParamData: []byte{0}}
	var ns0Resp *rdm.RDMResponse
	r.SendRDMRequest(ns0, func(_ rdm.Status, got *rdm.RDMResponse) { ns0Resp = got })
	if string(ns0Resp.ParamData[1:]) != "10.0.0.1" {
		t.Errorf("DNS_NAME_SERVER(0) = %q, want %q", ns0Resp.ParamData[1:], "10.0.0.1")
	}
}

func TestNetworkResponderNameServerOutOfRangeIndex(t *testing.T) {
	t.Parallel()

	dns := rdm.StaticDNSConfig{Host: "fixture01", Domain: "lan.example", NameServers: []string{"10.0.0.1"}}
	uid := rdm.NewUID(0x7a70, 5)
	r := rdm.NewNetworkResponder(uid, nil, dns)
	controller := rdm.NewUID(0x746f, 1)

	req := &rdm.RDMRequest{SourceUID: controller, DestinationUID: uid, CommandClass: rdm.CCGetCommand, ParamID: rdm.PIDDNSNameServer, ParamData: []byte{9}}
	var resp *rdm.RDMResponse
	r.SendRDMRequest(req, func(_ rdm.Status, got *rdm.RDMResponse) { resp = got })
	assertNack(t, resp, rdm.NRDataOutOfRange)
}

func TestNetworkResponderIdentifyAlwaysFalse(t *testing.T) {
	t.Parallel()

	uid := rdm.NewUID(0x7a70, 5)
	r := rdm.NewNetworkResponder(uid, nil, rdm.StaticDNSConfig{})
	controller := rdm.NewUID(0x746f, 1)

	req := &rdm.RDMRequest{SourceUID: controller, DestinationUID: uid, CommandClass: rdm.CCGetCommand, ParamID: rdm.PIDIdentifyDevice}
	var resp *rdm.RDMResponse
	r.SendRDMRequest(req, func(_ rdm.Status, got *rdm.RDMResponse) { resp = got })
	if resp.ParamData[0] != 0 {
		t.Errorf("IDENTIFY_DEVICE = %d, want 0 (no physical indicator)", resp.ParamData[0])
	}
}
