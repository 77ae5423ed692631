/*
Package permission provides the file-backed permission policy used to gate
commands.

# Permission Nodes

Permissions are dot-separated nodes such as "perm.grant". Grants are
patterns over nodes:

  - "perm.grant" matches exactly that node
  - "perm.*" matches one segment below perm
  - "perm.**" matches any depth below perm
  - "**" matches everything

Matching is case-insensitive and implemented with doublestar by treating
dots as path separators.

# Resolution Order

For a sender named N asking for node X:

 1. Operators (the sender reports IsOperator, or N is listed under
    operators) are always allowed.
 2. A deny of N matching X refuses.
 3. A grant of N matching X allows.
 4. Each group N belongs to is checked in order; entries starting with
    "-" deny, others grant.
 5. The "default" group is checked last.
 6. Otherwise the permission is refused.

# File Format

	namespace: cmdtree
	operators: [alice]
	groups:
	  default: [help, version, perm.check]
	  moderator: [perm.**, -perm.grant]
	users:
	  bob:
	    groups: [moderator]
	    grants: [say]
	    denies: [roll]

Describe prefixes the namespace, so "perm.grant" displays as
"cmdtree.perm.grant".
*/
package permission
