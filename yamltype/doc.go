// Package yamltype maps the structure of YAML documents to ambient
// TypeScript type declarations.
//
// Given config/app.yaml:
//
//	name: web
//	ports: [80, 443]
//
// [Generate] with [TypeName]("config/app.yaml") writes:
//
//	declare type App = {
//	  name: 'web';
//	  ports: [80, 443];
//	};
package yamltype
