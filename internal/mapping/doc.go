// Package mapping loads YAML declaration files and builds the catalogue of the
// mapper they declare.
//
// A declaration file describes the types mapping methods refer to, the methods of
// the mapper being implemented together with their configuration, the mappers it
// uses and the factories constructing abstract results. Types loaded from Go
// packages (see package analyze) need no declaration.
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - name: example.com/shop.Order
//	    properties:
//	      - id: int64
//	      - customer: example.com/shop.Customer
//	      - {name: total, type: int64, readonly: true}
//	  - name: example.com/shop.Status
//	    kind: enum
//	    constants: [NEW, PAID]
//	  - name: example.com/coll.List
//	    kind: iterable
//	    type_params: E
//	    abstract: true
//	    implementation: example.com/coll.ArrayList
//	mapper:
//	  name: OrderMapper
//	  methods:
//	    - name: toDto
//	      params: [{order: example.com/shop.Order}]
//	      returns: example.com/shop.OrderDto
//	      # Simplified 1:1 mappings, source path to target (highest priority)
//	      121:
//	        customer.name: customerName
//	      # Full directives
//	      mappings:
//	        - {target: created, source: createdAt, format: "2006-01-02"}
//	        - {target: channel, constant: web}
//	      # Targets left untouched (lowest priority)
//	      ignore: [internal]
//	    - name: toDtos
//	      params: [{orders: "[]example.com/shop.Order"}]
//	      returns: example.com/coll.List[example.com/shop.OrderDto]
//	      iterable: {element_format: "#.00"}
//	uses:
//	  - type: example.com/shop.PriceMapper
//	    methods:
//	      - {name: format, params: [{p: example.com/shop.Price}], returns: string}
//	factories:
//	  - {mapper: example.com/shop.PriceMapper, name: newDto, returns: example.com/shop.OrderDto}
//
// # Type Expressions
//
// Types are written the way Go writes them: "int", "time.Time", "[]T",
// "map[K]V", "example.com/pkg.Name" and "example.com/pkg.List[T]". Names may be
// shortened to a unique package suffix ("shop.Order") or a unique name
// ("Order"). Pointers are transparent.
//
// # Priority Order
//
// The directives of a target apply in this order, the first one wins:
//  1. "121" shorthand mappings, ordered by target
//  2. "mappings" explicit directives, in file order
//  3. "ignore" list
//
// # Path Syntax
//
// Source paths are dot separated property names ("customer.address.city"),
// optionally starting with a parameter name.
package mapping
