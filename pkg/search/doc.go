package search

// Grammar
//
// --- PARSER RULES ---

// expression  : term ( "or" term )* ;
// term        : factor ( "and" factor )* ;
//
// factor      : comparison
//             | "(" expression ")" ;
//
// comparison  : IDENTIFIER ( "=" | "!=" | "~" | "!~" | "^" | "!^"
//                          | "<" | "<=" | ">" | ">=" ) value ;
//
// value       : STRING | WORD ;
//
// --- LEXER RULES ---
//
// // Field names and unquoted values share one token; the parser decides
// // by position. Operator bytes and whitespace terminate a word.
// WORD   : anything but whitespace and ()=!~^<>"' ;
//
// STRING : "'" (.*?) "'" | "\"" (.*?) "\"" ;   // \" and \' escape the closer
//
// Queries are validated and canonicalized locally before being handed to
// the remote tool's --search flag, so a typo fails fast with a position
// instead of a server-side error message.
