package rdm

// DNSGetter abstracts the host's resolver configuration, so
// NetworkResponder can report it without owning any actual networking
// code — the RDM core stays free of OS-level dependencies.
type DNSGetter interface {
	HostName() string
	DomainName() string
	NameServer(index uint8) (string, bool)
}

// StaticDNSConfig is a fixed DNSGetter, for simulated or test fixtures.
type StaticDNSConfig struct {
	Host        string
	Domain      string
	NameServers []string
}

func (c StaticDNSConfig) HostName() string   { return c.Host }
func (c StaticDNSConfig) DomainName() string { return c.Domain }

func (c StaticDNSConfig) NameServer(index uint8) (string, bool) {
	if int(index) >= len(c.NameServers) {
		return "", false
	}
	return c.NameServers[index], true
}

// NetworkResponder models an E1.37-2 network interface responder,
// reporting host/domain name and configured name servers via a DNSGetter.
type NetworkResponder struct {
	uid           UID
	startAddress  uint16
	personalities *PersonalityManager
	dns           DNSGetter
}

// NewNetworkResponder builds a network responder backed by dns.
func NewNetworkResponder(uid UID, personalities Personalities, dns DNSGetter) *NetworkResponder {
	return &NetworkResponder{
		uid:           uid,
		startAddress:  1,
		personalities: NewPersonalityManager(personalities),
		dns:           dns,
	}
}

var networkOps = NewResponderOps(networkParamHandlers)

var networkParamHandlers = []ParamHandler[*NetworkResponder]{
	{PID: PIDDeviceInfo, Get: (*NetworkResponder).getDeviceInfo},
	{PID: PIDDmxStartAddress, Get: (*NetworkResponder).getDmxStartAddress},
	{PID: PIDIdentifyDevice, Get: (*NetworkResponder).getIdentifyDevice},
	{PID: PIDDNSHostName, Get: (*NetworkResponder).getDNSHostName},
	{PID: PIDDNSDomainName, Get: (*NetworkResponder).getDNSDomainName},
	{PID: PIDDNSNameServer, Get: (*NetworkResponder).getDNSNameServer},
	{PID: PIDSoftwareVersionLabel, Get: (*NetworkResponder).getSoftwareVersionLabel},
}

func (r *NetworkResponder) SendRDMRequest(req *RDMRequest, onComplete Callback) {
	networkOps.HandleRDMRequest(r, r.uid, RootRDMDevice, req, onComplete)
}

func (r *NetworkResponder) getDeviceInfo(req *RDMRequest) *RDMResponse {
	return GetDeviceInfo(req, DeviceInfo{
		Model:           DummyDeviceModel,
		ProductCategory: ProductCategoryNetwork,
		SoftwareVersion: 1,
		DmxStartAddress: r.startAddress,
	}, r.personalities)
}

func (r *NetworkResponder) getDmxStartAddress(req *RDMRequest) *RDMResponse {
	return GetDmxAddress(req, r.startAddress, r.personalities.Footprint())
}

// getIdentifyDevice always reports false: a network interface has no
// physical identify indicator in this model.
func (r *NetworkResponder) getIdentifyDevice(req *RDMRequest) *RDMResponse {
	return GetBoolValue(req, false)
}

func (r *NetworkResponder) getDNSHostName(req *RDMRequest) *RDMResponse {
	return GetString(req, r.dns.HostName())
}

func (r *NetworkResponder) getDNSDomainName(req *RDMRequest) *RDMResponse {
	return GetString(req, r.dns.DomainName())
}

// getDNSNameServer decodes a uint8 name-server index and looks it up via
// the DNSGetter; an undefined index is out of range.
func (r *NetworkResponder) getDNSNameServer(req *RDMRequest) *RDMResponse {
	idx, ok := ExtractUint8(req.ParamData)
	if !ok {
		return NackWithReason(req, NRFormatError, 0)
	}
	server, found := r.dns.NameServer(idx)
	if !found {
		return NackWithReason(req, NRDataOutOfRange, 0)
	}
	w := newBufWriter().WriteU8(idx).WriteFixedString32(server)
	return GetResponseFromData(req, w.Bytes(), ResponseTypeAck, 0)
}

func (r *NetworkResponder) getSoftwareVersionLabel(req *RDMRequest) *RDMResponse {
	return GetString(req, "rdmsim network responder")
}

// UID returns the responder's own RDM identifier.
func (r *NetworkResponder) UID() UID {
	return r.uid
}
