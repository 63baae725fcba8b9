/*
The reducer turns a pseudo-boolean polynomial of arbitrary degree into quadratic terms plus a list of product
constraints. It repeatedly picks the variable pair shared by most of the remaining higher-order terms, replaces it by
a fresh product variable and rewrites all affected terms, until no term has more than two variables.

Among pairs which are shared by the same number of terms the smallest pair in natural label order is reduced first,
so identical inputs always introduce identically named product variables.
*/
package reducer
