package bt

// serviceClassNames maps well-known 16 bit service class identifiers to
// their human readable names
var serviceClassNames = map[uint16]string{
	0x1000: "Service Discovery",
	0x1001: "Browse Group Descriptor",
	0x1002: "Public Browse Group",
	0x1101: "Serial Port Profile",
	0x1102: "LAN Access Profile",
	0x1103: "Dial-up Networking",
	0x1104: "Synchronization",
	0x1105: "Object Push",
	0x1106: "File Transfer",
	0x1107: "Synchronization Command",
	0x1108: "Headset Service",
	0x1109: "Cordless Telephony",
	0x110a: "Audio Source",
	0x110b: "Audio Sink",
	0x110c: "Audio/Video Remote Control Target",
	0x110d: "Advanced Audio Distribution",
	0x110e: "Audio/Video Remote Control",
	0x110f: "Audio/Video Remote Control Controller",
	0x1110: "Intercom Profile",
	0x1111: "Fax Profile",
	0x1112: "Headset AG",
	0x1113: "WAP",
	0x1114: "WAP Client",
	0x1115: "Personal Area Networking User",
	0x1116: "Network Access Point",
	0x1117: "Group Ad-hoc Network",
	0x1118: "Direct Printing",
	0x1119: "Reference Printing",
	0x111a: "Basic Imaging",
	0x111b: "Imaging Responder",
	0x111c: "Imaging Automatic Archive",
	0x111d: "Imaging Referenced Objects",
	0x111e: "Hands-Free",
	0x111f: "Hands-Free Audio Gateway",
	0x1120: "Direct Printing Reference Objects",
	0x1121: "Reflected UI",
	0x1122: "Basic Printing",
	0x1123: "Printing Status",
	0x1124: "Human Interface Device",
	0x1125: "Hardcopy Cable Replacement",
	0x1126: "Hardcopy Cable Replacement Print",
	0x1127: "Hardcopy Cable Replacement Scan",
	0x1128: "Common ISDN Access",
	0x112d: "SIM Access",
	0x112e: "Phonebook Access PCE",
	0x112f: "Phonebook Access PSE",
	0x1130: "Phonebook Access",
	0x1131: "Headset HS",
	0x1132: "Message Access Server",
	0x1133: "Message Notification Server",
	0x1134: "Message Access",
	0x1135: "Global Navigation Satellite System",
	0x1136: "Global Navigation Satellite System Server",
	0x1200: "PnP Information",
	0x1201: "Generic Networking",
	0x1202: "Generic File Transfer",
	0x1203: "Generic Audio",
	0x1204: "Generic Telephony",
	0x1303: "Video Source",
	0x1304: "Video Sink",
	0x1305: "Video Distribution",
	0x1400: "Health Device",
	0x1401: "Health Device Source",
	0x1402: "Health Device Sink",
	0x1800: "Generic Access",
	0x1801: "Generic Attribute",
}

// UnknownServiceName is returned for service classes missing from the table
const UnknownServiceName = "Unknown Service"

// ServiceClassName returns the canonical name of a well-known service class
func ServiceClassName(class uint16) string {
	if name, ok := serviceClassNames[class]; ok {
		return name
	}

	return UnknownServiceName
}
