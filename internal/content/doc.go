// Package content implements the template personalization engine: variable
// resolution, conditional rule evaluation, content assembly, and the
// deterministic scoring that accompanies each generation.
//
// The service layer in this package depends only on the repository interfaces
// declared here. Repository implementations live in repository/memory/,
// repository/postgres/, and repository/redisstore/.
package content
