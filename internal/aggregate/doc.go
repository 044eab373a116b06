// Package aggregate provides read-only views over the annotated record set:
// a temporal trend of regulatory scores per period and a per-department
// distribution. Both views are pure functions of their input and never
// modify the records.
package aggregate
