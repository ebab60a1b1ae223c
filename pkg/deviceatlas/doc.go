// Package deviceatlas identifies client devices from User-Agent strings using
// a precompiled DeviceAtlas-style reference dataset.
//
// The dataset is a JSON document with two top-level keys:
//
//	{
//	  "p": ["smodel", "svendor", "bisBrowser", "idisplayWidth"],
//	  "t": {
//	    "c": {
//	      "Mozilla/5.0 (": {
//	        "d": {"2": "1"},
//	        "c": {"SymbianOS": {"d": {"0": "N95", "1": "Nokia"}}}
//	      }
//	    }
//	  }
//	}
//
// "p" lists property definitions; the first letter is the type tag
// (s string, b boolean, i integer, d date) and the position is the id.
// "t" is the root of the trie. Each node may carry properties ("d", an
// object keyed by id or a list indexed by id), a mask ("m", the ids a deeper
// node may still override) and children ("c", keyed by the literal substring
// consumed on the way down).
//
// # Usage
//
//	atlas, err := deviceatlas.LoadFile("/var/lib/deviceatlas/DeviceAtlas.json",
//	    deviceatlas.WithLogger(log),
//	)
//	if err != nil {
//	    // ErrInvalidDataset, ErrUnknownPropertyType, ErrUnknownPropertyID, ...
//	}
//
//	d := atlas.Device(r.UserAgent())
//	model, _ := d.String("model")
//	isBrowser, _ := d.Bool("isBrowser")
//
// Properties resolves a subset by name and stops walking as soon as all of
// them are known:
//
//	d, err := atlas.Properties(ua, "model", "vendor")
//
// Middleware resolves the request's User-Agent once per request and makes the
// Device available through FromContext.
//
// # Error Handling
//
// All validation happens at load time. A dataset whose tree references
// unknown property ids or carries values that do not fit their declared type
// is rejected by Load, so lookups never fail.
package deviceatlas
