// Package scene builds graph.PaintNode trees from YAML design documents.
//
// A document declares the canvas size, a background color, reusable
// symbols and the root node:
//
//	width: 200
//	height: 120
//	background: "#ffffff"
//	symbols:
//	  badge:
//	    type: ellipse
//	    frame: [0, 0, 20, 20]
//	    style:
//	      fills: [{color: "#e33"}]
//	root:
//	  type: frame
//	  id: card
//	  frame: [10, 10, 180, 100]
//	  radius: [8, 8, 8, 8]
//	  style:
//	    fills:
//	      - gradient:
//	          kind: linear
//	          from: [0, 0]
//	          to: [1, 1]
//	          stops: [{pos: 0, color: "#fff"}, {pos: 1, color: "#ddd"}]
//	    shadows: [{color: "#0004", offset: [0, 4], blur: 8}]
//	  children:
//	    - type: instance
//	      id: b1
//	      ref: badge
//	      transform: {translate: [150, 10]}
//
// Node types are group, frame, rectangle, ellipse, star, polygon, path, text,
// image, boolean and instance. An instance copies its symbol; the GUIDs of
// the copy are prefixed with the instance id and a slash.
package scene
