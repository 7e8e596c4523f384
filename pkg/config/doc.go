// Package config loads the wol YAML configuration file and builds the
// components it describes.
//
// Example file:
//
//	broadcast:
//	  target: "255.255.255.255:9"
//	  attempt_timeout: 5s
//	  timeout: 6s
//	  interface: ""        # "", "any", "wireless" or an interface name
//	registry:
//	  driver: sqlite       # sqlite | memory
//	  path: ~/.config/wol/devices.db
//	log:
//	  level: warn          # disabled | error | warn | info | debug | trace
//
// Every field is optional. Unknown keys are rejected so typos surface early.
package config
