// Package config provides configuration parsing for the valuetrack CLI.
//
// The configuration is stored in valuetrack.json. This package handles
// loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "inspector": {
//	    "addr": "localhost:7070",
//	    "bufferSize": 64,
//	    "allowedOrigins": ["http://localhost:3000"]
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "valuetrack",
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "valuetrack"
//	  },
//	  "demo": {
//	    "tick": "1s"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFile("valuetrack.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
