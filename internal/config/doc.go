// Package config provides configuration parsing for retain.
//
// The configuration is stored in retain.json. Every field is optional;
// missing values take the defaults below.
//
// # Configuration File Structure
//
//	{
//	  "render": {
//	    "gcThreshold": 42,
//	    "gcPolicy": "entry",
//	    "reclaimState": true,
//	    "updateStyles": true,
//	    "debugIds": false
//	  },
//	  "live": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "codec": "json",
//	    "metrics": true
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "auto"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.LiveAddress())
package config
